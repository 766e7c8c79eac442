package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tmc/langchaingo/llms"
)

const chatResponse = `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Acne is a skin condition."},"finish_reason":"stop"}]}`

func newTestServer(t *testing.T, body *map[string]any, status int, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/inference/chat/completions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if body != nil {
			if err := json.NewDecoder(r.Body).Decode(body); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestGenerateContentSendsOptions(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, &body, http.StatusOK, chatResponse)
	defer srv.Close()

	c := New(Config{
		Token:   "test-token",
		BaseURL: srv.URL + "/inference",
		Model:   "default-model",
	})
	resp, err := c.GenerateContent(context.Background(), []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, "You are a Medical assistant."),
		llms.TextParts(llms.ChatMessageTypeHuman, "What is acne?"),
	},
		llms.WithModel("openai/gpt-4o"),
		llms.WithTemperature(0.7),
		llms.WithTopP(1.0),
		llms.WithMaxTokens(1000),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]any{
		"model": "openai/gpt-4o",
		"messages": []any{
			map[string]any{"role": "system", "content": "You are a Medical assistant."},
			map[string]any{"role": "user", "content": "What is acne?"},
		},
		"temperature": 0.7,
		"top_p":       1.0,
		"max_tokens":  1000.0,
	}
	if diff := cmp.Diff(expected, body); diff != "" {
		t.Error(diff)
	}
	if len(resp.Choices) != 1 {
		t.Fatalf("expected 1 choice, got %d", len(resp.Choices))
	}
	if resp.Choices[0].Content != "Acne is a skin condition." {
		t.Errorf("unexpected content %q", resp.Choices[0].Content)
	}
	if resp.Choices[0].StopReason != "stop" {
		t.Errorf("unexpected stop reason %q", resp.Choices[0].StopReason)
	}
}

func TestGenerateContentDefaultModel(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, &body, http.StatusOK, chatResponse)
	defer srv.Close()

	c := New(Config{Token: "test-token", BaseURL: srv.URL + "/inference", Model: "openai/gpt-4o"})
	answer, err := c.Call(context.Background(), "What is acne?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Acne is a skin condition." {
		t.Errorf("unexpected answer %q", answer)
	}
	if body["model"] != "openai/gpt-4o" {
		t.Errorf("expected default model, got %v", body["model"])
	}
}

func TestGenerateContentErrorStatus(t *testing.T) {
	srv := newTestServer(t, nil, http.StatusUnauthorized, `{"error":{"message":"bad credentials","type":"invalid_request_error"}}`)
	defer srv.Close()

	c := New(Config{Token: "test-token", BaseURL: srv.URL + "/inference", Model: "openai/gpt-4o"})
	_, err := c.GenerateContent(context.Background(), []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, "What is acne?"),
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGenerateContentRejectsMessagesWithoutText(t *testing.T) {
	c := New(Config{Token: "test-token", BaseURL: "http://127.0.0.1:0", Model: "openai/gpt-4o"})
	_, err := c.GenerateContent(context.Background(), []llms.MessageContent{
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.ImageURLContent{URL: "http://example.com/x.png"}}},
	})
	if !errors.Is(err, ErrNoTextContent) {
		t.Errorf("expected ErrNoTextContent, got %v", err)
	}
}
