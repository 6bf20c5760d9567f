package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"storescan-go/pkg/logger"
)

// SearchConfig configures the open blog-search client.
type SearchConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	Display      int
}

// BlogSearchClient queries the open blog-search API for one keyword.
type BlogSearchClient struct {
	config SearchConfig
	client *fasthttp.Client
	log    *logger.Logger
}

// NewBlogSearchClient creates a blog search client. Client ID and secret are
// required.
func NewBlogSearchClient(config SearchConfig) (*BlogSearchClient, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("search API credentials are required")
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://openapi.naver.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Display <= 0 {
		config.Display = 3
	}

	client := &fasthttp.Client{
		ReadTimeout:         config.Timeout,
		WriteTimeout:        config.Timeout,
		MaxConnsPerHost:     16,
		MaxIdleConnDuration: 90 * time.Second,
	}

	return &BlogSearchClient{
		config: config,
		client: client,
		log:    logger.GetLogger().WithField("component", "blog_search_client"),
	}, nil
}

// Search returns the blog total and top posts for one keyword, sorted by
// relevance. Titles are stripped of search markup before being returned.
func (c *BlogSearchClient) Search(ctx context.Context, keyword string) (*BlogSearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("keyword is required")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	query := url.Values{}
	query.Set("query", keyword)
	query.Set("display", fmt.Sprintf("%d", c.config.Display))
	query.Set("sort", "sim")

	req.SetRequestURI(c.config.BaseURL + "/v1/search/blog.json?" + query.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Naver-Client-Id", c.config.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.config.ClientSecret)

	if err := c.client.DoTimeout(req, resp, c.config.Timeout); err != nil {
		return nil, fmt.Errorf("blog search request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("blog search returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var result BlogSearchResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode blog search response: %w", err)
	}

	for i := range result.Items {
		result.Items[i].Title = StripMarkup(result.Items[i].Title)
	}

	c.log.WithFields(map[string]interface{}{
		"keyword": keyword,
		"total":   result.Total,
	}).Debug("Blog search completed")

	return &result, nil
}

var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&#39;", "'",
	"&nbsp;", " ",
)

// StripMarkup removes search-highlight tags and common HTML entities from a
// result title.
func StripMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(entityReplacer.Replace(b.String()))
}
