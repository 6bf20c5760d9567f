package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured marks a missing credential. Callers surface this as the
// report-level "analysis unavailable" state instead of guessing content.
var ErrNotConfigured = errors.New("llm: base URL, API key and model are required")

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const systemPrompt = "당신은 소상공인 로컬 마케팅 전문가입니다. " +
	"반드시 JSON 객체 하나만 출력하세요. 키: menu_synonyms, category_words, " +
	"intent_words, situational_words, purchase_triggers, seasonal_modifiers, insights. " +
	"각 값은 짧은 한국어 문자열 배열이며, insights는 한두 문장의 전략 제안입니다."

// Suggest expands a shop profile into keyword-building word lists.
func (c *Client) Suggest(ctx context.Context, profile ShopProfile) (*Suggestions, error) {
	if c.BaseURL == "" || c.APIKey == "" || c.Model == "" {
		return nil, ErrNotConfigured
	}

	content, err := c.chat(ctx, systemPrompt, formatPrompt(profile))
	if err != nil {
		return nil, err
	}

	var suggestions Suggestions
	if err := json.Unmarshal([]byte(extractJSON(content)), &suggestions); err != nil {
		return nil, fmt.Errorf("llm: reply is not the expected JSON shape: %w", err)
	}
	suggestions.normalize()
	return &suggestions, nil
}

func (c *Client) chat(ctx context.Context, system, user string) (string, error) {
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}

	reqBody, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: endpoint returned status %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != nil {
		return "", fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 20 * time.Second}
}

func formatPrompt(profile ShopProfile) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "가게 이름: %s\n", profile.ShopName)
	fmt.Fprintf(&buf, "업종: %s\n", profile.Category)
	fmt.Fprintf(&buf, "대표 메뉴: %s\n", strings.Join(profile.Menu, ", "))
	if len(profile.Tags) > 0 {
		fmt.Fprintf(&buf, "특징 태그: %s\n", strings.Join(profile.Tags, ", "))
	}
	fmt.Fprintf(&buf, "상권 페르소나: %s\n", profile.Persona)
	fmt.Fprintf(&buf, "위치: %s\n", profile.Location)
	buf.WriteString("\n위 가게의 검색 키워드 확장 단어들을 JSON으로 제안하세요.\n")
	return buf.String()
}

// extractJSON trims code fences and surrounding prose some models wrap
// around their JSON reply.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}
