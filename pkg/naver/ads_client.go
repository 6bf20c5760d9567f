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

const keywordToolURI = "/keywordstool"

// MaxHintKeywords is the keyword tool's per-request hint limit.
const MaxHintKeywords = 5

// AdsConfig configures the search-ads keyword tool client.
type AdsConfig struct {
	BaseURL    string
	APIKey     string
	SecretKey  string
	CustomerID string
	Timeout    time.Duration
}

// KeywordToolClient queries the search-ads keyword tool for related keywords
// and their monthly volumes.
type KeywordToolClient struct {
	config AdsConfig
	client *fasthttp.Client
	log    *logger.Logger
}

// NewKeywordToolClient creates a keyword tool client. The API key, secret
// and customer ID are all required.
func NewKeywordToolClient(config AdsConfig) (*KeywordToolClient, error) {
	if config.APIKey == "" || config.SecretKey == "" || config.CustomerID == "" {
		return nil, fmt.Errorf("ads API credentials are required")
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.naver.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	client := &fasthttp.Client{
		ReadTimeout:         config.Timeout,
		WriteTimeout:        config.Timeout,
		MaxConnsPerHost:     16,
		MaxIdleConnDuration: 90 * time.Second,
	}

	return &KeywordToolClient{
		config: config,
		client: client,
		log:    logger.GetLogger().WithField("component", "keyword_tool_client"),
	}, nil
}

// RelatedKeywords submits up to MaxHintKeywords hint terms and returns the
// related-keyword statistics. Whitespace inside hints is stripped; the tool
// treats spaced and unspaced forms as the same query.
func (c *KeywordToolClient) RelatedKeywords(ctx context.Context, hints []string) ([]KeywordStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(hints) == 0 {
		return nil, fmt.Errorf("no hint keywords provided")
	}
	if len(hints) > MaxHintKeywords {
		return nil, fmt.Errorf("keyword tool accepts at most %d hints, got %d", MaxHintKeywords, len(hints))
	}

	compact := make([]string, 0, len(hints))
	for _, hint := range hints {
		stripped := strings.ReplaceAll(hint, " ", "")
		if stripped != "" {
			compact = append(compact, stripped)
		}
	}
	if len(compact) == 0 {
		return nil, fmt.Errorf("no usable hint keywords after normalization")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	query := url.Values{}
	query.Set("hintKeywords", strings.Join(compact, ","))
	query.Set("showDetail", "1")

	req.SetRequestURI(c.config.BaseURL + keywordToolURI + "?" + query.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	for key, value := range authHeaders(fasthttp.MethodGet, keywordToolURI, c.config.APIKey, c.config.SecretKey, c.config.CustomerID) {
		req.Header.Set(key, value)
	}

	c.log.WithField("hint_count", len(compact)).Debug("Querying keyword tool")

	if err := c.client.DoTimeout(req, resp, c.config.Timeout); err != nil {
		return nil, fmt.Errorf("keyword tool request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("keyword tool returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var parsed keywordToolResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode keyword tool response: %w", err)
	}

	return parsed.KeywordList, nil
}
