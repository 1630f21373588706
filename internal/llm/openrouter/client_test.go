package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-parser/internal/llm"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:      "test-key",
		Model:       "meta-llama/llama-3.3-8b-instruct:free",
		BaseURL:     baseURL,
		MaxTokens:   20000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestComplete_Success(t *testing.T) {
	t.Parallel()

	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "gen-1",
			"model": "meta-llama/llama-3.3-8b-instruct:free",
			"choices": [{"message": {"role": "assistant", "content": "{\"personal\":{}}"}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 45, "total_tokens": 165}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Complete(context.Background(), "extract this resume")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got.Content != `{"personal":{}}` {
		t.Fatalf("content = %q", got.Content)
	}
	if got.Usage == nil {
		t.Fatal("expected usage to be reported")
	}
	if got.Usage.PromptTokens != 120 || got.Usage.CompletionTokens != 45 || got.Usage.TotalTokens != 165 {
		t.Fatalf("usage = %+v", got.Usage)
	}

	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", gotReq.Messages)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.7 {
		t.Fatalf("temperature = %v, want 0.7", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 20000 {
		t.Fatalf("max_tokens = %d, want 20000", gotReq.MaxTokens)
	}
}

func TestComplete_NoUsageBlock(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{}"}}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got.Usage != nil {
		t.Fatalf("expected nil usage, got %+v", got.Usage)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestComplete_BlankContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "   "}}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestComplete_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestComplete_APIErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "model not found", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestComplete_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(t, srv.URL).Complete(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{APIKey: "k"}); err == nil {
		t.Fatal("expected error when model is missing")
	}
	if _, err := NewClient(Config{Model: "m"}); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}
