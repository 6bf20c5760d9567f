package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testProfile() ShopProfile {
	return ShopProfile{
		ShopName: "명가 닭국수",
		Category: "닭국수",
		Menu:     []string{"닭국수", "닭칼국수"},
		Tags:     []string{"혼밥"},
		Persona:  "20대 남성 거주 상권",
		Location: "용인시 처인구",
	}
}

func TestSuggest(t *testing.T) {
	reply := `{"menu_synonyms":["닭칼국수"],"intent_words":["맛집"],"insights":["점심 상권을 노리세요"]}`
	server := chatServer(t, reply)
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "k", Model: "m", HTTPClient: server.Client()}
	got, err := client.Suggest(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("Suggest() error: %v", err)
	}

	if len(got.MenuSynonyms) != 1 || got.MenuSynonyms[0] != "닭칼국수" {
		t.Errorf("MenuSynonyms = %v", got.MenuSynonyms)
	}
	if len(got.Insights) != 1 {
		t.Errorf("Insights = %v", got.Insights)
	}
	// Omitted keys default to empty slices, never nil.
	if got.CategoryWords == nil || got.PurchaseTriggers == nil || got.SeasonalModifiers == nil {
		t.Error("omitted keys must default to empty slices")
	}
}

func TestSuggestFencedReply(t *testing.T) {
	reply := "```json\n{\"category_words\":[\"국수\"]}\n```"
	server := chatServer(t, reply)
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "k", Model: "m", HTTPClient: server.Client()}
	got, err := client.Suggest(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("Suggest() error: %v", err)
	}
	if len(got.CategoryWords) != 1 || got.CategoryWords[0] != "국수" {
		t.Errorf("CategoryWords = %v", got.CategoryWords)
	}
}

func TestSuggestNotConfigured(t *testing.T) {
	client := &Client{}
	_, err := client.Suggest(context.Background(), testProfile())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSuggestNonJSONReply(t *testing.T) {
	server := chatServer(t, "죄송합니다, 도와드릴 수 없습니다.")
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "k", Model: "m", HTTPClient: server.Client()}
	if _, err := client.Suggest(context.Background(), testProfile()); err == nil {
		t.Error("expected error for non-JSON reply")
	}
}

func TestSuggestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "k", Model: "m", HTTPClient: server.Client()}
	if _, err := client.Suggest(context.Background(), testProfile()); err == nil {
		t.Error("expected error for 500 response")
	}
}
