package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string, fallbacks string) Client {
	t.Helper()
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("OPENROUTER_BASE_URL", baseURL)
	t.Setenv("OPENROUTER_MODEL", "m1")
	t.Setenv("OPENROUTER_FALLBACK_MODELS", fallbacks)
	t.Setenv("OPENROUTER_TIMEOUT_SECONDS", "5")

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := NewClient(log, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func decodeModel(t *testing.T, r *http.Request) string {
	t.Helper()
	var req struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	return req.Model
}

func writeUnavailable(w http.ResponseWriter, model string) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `{"error":{"message":"No endpoints found for %s","code":404}}`, model)
}

func writeCompletion(w http.ResponseWriter, model, content string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"id":"gen-1","model":%q,"choices":[{"message":{"role":"assistant","content":%q},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`, model, content)
}

func TestCompleteFallsBackPastUnavailableModels(t *testing.T) {
	var attempts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			http.NotFound(w, r)
			return
		}
		model := decodeModel(t, r)
		attempts = append(attempts, model)
		if model != "m3" {
			writeUnavailable(w, model)
			return
		}
		writeCompletion(w, model, "hello from m3")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "m2,m3")

	out, err := c.Complete(context.Background(), "m1", []ChatMessage{{Role: "user", Content: "hi"}}, ChatParams{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := out.ReplyText(); got != "hello from m3" {
		t.Fatalf("reply = %q, want %q", got, "hello from m3")
	}
	if len(attempts) != 3 || attempts[0] != "m1" || attempts[1] != "m2" || attempts[2] != "m3" {
		t.Fatalf("attempts = %v, want [m1 m2 m3]", attempts)
	}
}

func TestCompleteAbortsOnNonRetryableFailure(t *testing.T) {
	var attempts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			http.NotFound(w, r)
			return
		}
		model := decodeModel(t, r)
		attempts = append(attempts, model)
		switch model {
		case "m1":
			writeUnavailable(w, model)
		case "m2":
			w.Header().Set("X-Request-Id", "req-401")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"invalid api key"}}`)
		default:
			writeCompletion(w, model, "should not be reached")
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "m2,m3")

	_, err := c.Complete(context.Background(), "m1", []ChatMessage{{Role: "user", Content: "hi"}}, ChatParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	var fbErr *FallbackError
	if !errors.As(err, &fbErr) {
		t.Fatalf("error type = %T, want *FallbackError", err)
	}
	if len(fbErr.Tried) != 2 || fbErr.Tried[0] != "m1" || fbErr.Tried[1] != "m2" {
		t.Fatalf("tried = %v, want [m1 m2]", fbErr.Tried)
	}
	if fbErr.LastModel() != "m2" {
		t.Fatalf("last model = %q, want m2", fbErr.LastModel())
	}
	if fbErr.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", fbErr.Status)
	}
	if fbErr.RequestID != "req-401" {
		t.Fatalf("request id = %q, want req-401", fbErr.RequestID)
	}
	if fbErr.Message != "invalid api key" {
		t.Fatalf("message = %q", fbErr.Message)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %v, want exactly 2", attempts)
	}
}

func TestCompleteExhaustionReturnsTriedList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			http.NotFound(w, r)
			return
		}
		writeUnavailable(w, decodeModel(t, r))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "m2")

	_, err := c.Complete(context.Background(), "m1", []ChatMessage{{Role: "user", Content: "hi"}}, ChatParams{})
	var fbErr *FallbackError
	if !errors.As(err, &fbErr) {
		t.Fatalf("error type = %T, want *FallbackError", err)
	}
	if len(fbErr.Tried) != 2 {
		t.Fatalf("tried = %v, want 2 candidates", fbErr.Tried)
	}
	if fbErr.MessageCount != 1 {
		t.Fatalf("message count = %d, want 1", fbErr.MessageCount)
	}
}

func TestCandidatesFilteredByLiveAvailability(t *testing.T) {
	var attempts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data":[{"id":"m2"},{"id":"m3"}]}`)
			return
		}
		model := decodeModel(t, r)
		attempts = append(attempts, model)
		writeCompletion(w, model, "ok")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "m2,m3")

	if _, err := c.Complete(context.Background(), "m1", []ChatMessage{{Role: "user", Content: "hi"}}, ChatParams{}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(attempts) != 1 || attempts[0] != "m2" {
		t.Fatalf("attempts = %v, want [m2]", attempts)
	}
}

func TestStreamPassesBodyThrough(t *testing.T) {
	const sse = "data: {\"choices\":[{\"delta\":{\"content\":\"hel\"}}]}\n\ndata: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\ndata: [DONE]\n\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Stream bool `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !req.Stream {
			t.Error("expected stream:true in request")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sse)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	stream, err := c.Stream(context.Background(), "m1", []ChatMessage{{Role: "user", Content: "hi"}}, ChatParams{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Body.Close()

	if stream.ContentType != "text/event-stream" {
		t.Fatalf("content type = %q", stream.ContentType)
	}
	raw, err := io.ReadAll(stream.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(raw) != sse {
		t.Fatalf("stream body altered:\n got %q\nwant %q", raw, sse)
	}
}

func TestCompleteSendsGenerationParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			http.NotFound(w, r)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		for _, want := range []string{`"temperature":0.3`, `"top_p":0.9`, `"max_tokens":600`} {
			if !strings.Contains(body, want) {
				t.Errorf("request body missing %s: %s", want, body)
			}
		}
		writeCompletion(w, "m1", "ok")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")

	temp, topP := 0.3, 0.9
	_, err := c.Complete(context.Background(), "m1",
		[]ChatMessage{{Role: "user", Content: "hi"}},
		ChatParams{Temperature: &temp, TopP: &topP, MaxTokens: 600},
	)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
}
