package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatServer records the last chat completion request body and answers
// with content.
func chatServer(t *testing.T, status int, content, finish string, got *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "server_error", "message": "nope"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIProvider_StructuredReply(t *testing.T) {
	var body map[string]any
	server := chatServer(t, http.StatusOK, `{"name":"Grace","age":85}`, "stop", &body)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Generate(context.Background(), Request{
		System:    "You write quiz questions.",
		Messages:  UserMessage("Topic: compilers"),
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Errorf("Usage = %+v", resp.Usage)
	}

	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	format, _ := body["response_format"].(map[string]any)
	schema, _ := format["json_schema"].(map[string]any)
	if schema["name"] != "test-object" || schema["strict"] != true {
		t.Errorf("json_schema = %v", schema)
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	server := chatServer(t, http.StatusOK, `{"name":"Grace"}`, "stop", nil)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: server.URL + "/v1"})

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	server := chatServer(t, http.StatusOK, `{"name":"Gr`, "length", nil)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: server.URL + "/v1"})

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), Schema: testSchema()})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
		server := chatServer(t, status, "", "", nil)
		p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: server.URL + "/v1"})

		_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
		if status == http.StatusTooManyRequests {
			if !IsRateLimit(err) {
				t.Errorf("429: expected rate limit, got %T (%v)", err, err)
			}
			continue
		}
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Errorf("%d: expected ErrProviderUnavailable, got %T (%v)", status, err, err)
		}
	}
}

func TestOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without API key")
	}
}
