package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

// ChatMessage is one turn of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams are the per-call generation knobs. Nil pointer fields are
// omitted from the request so provider defaults apply.
type ChatParams struct {
	Temperature    *float64
	TopP           *float64
	MaxTokens      int
	ResponseFormat map[string]any
}

// ChatCompletion is the parsed non-streaming completion body. Raw keeps the
// upstream bytes so proxy callers can return the body verbatim.
type ChatCompletion struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`

	Raw json.RawMessage `json:"-"`
}

// ReplyText returns the first choice's message content.
func (c *ChatCompletion) ReplyText() string {
	if c == nil || len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

// ChatStream is a successful streaming completion. The caller owns Body and
// must close it; bytes are proxied from the provider without buffering.
type ChatStream struct {
	Model       string
	ContentType string
	Body        io.ReadCloser
}

// Client is the OpenRouter chat-completion client used by the rest of the
// backend. Complete and Stream walk the fallback candidate list; a candidate
// that fails with the provider-unavailable signature advances the loop, any
// other failure aborts it.
type Client interface {
	Complete(ctx context.Context, model string, messages []ChatMessage, params ChatParams) (*ChatCompletion, error)
	Stream(ctx context.Context, model string, messages []ChatMessage, params ChatParams) (*ChatStream, error)
	ListModels(ctx context.Context) ([]string, error)
	DefaultModel() string
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	fallbacks  []string
	httpClient *http.Client
	models     *modelCache
}

func NewClient(log *logger.Logger, rdb *redis.Client) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENROUTER_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENROUTER_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("OPENROUTER_MODEL"))
	if model == "" {
		model = "meta-llama/llama-3.3-70b-instruct:free"
	}

	var fallbacks []string
	for _, part := range strings.Split(os.Getenv("OPENROUTER_FALLBACK_MODELS"), ",") {
		if s := strings.TrimSpace(part); s != "" {
			fallbacks = append(fallbacks, s)
		}
	}

	timeoutSec := 60
	if v := os.Getenv("OPENROUTER_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("service", "OpenRouterClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		fallbacks:  fallbacks,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		models:     newModelCache(rdb),
	}, nil
}

func (c *client) DefaultModel() string { return c.model }

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []ChatMessage  `json:"messages"`
	Temperature    *float64       `json:"temperature,omitempty"`
	TopP           *float64       `json:"top_p,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	Stream         bool           `json:"stream,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type openRouterHTTPError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *openRouterHTTPError) Error() string {
	return fmt.Sprintf("openrouter http %d: %s", e.StatusCode, e.Body)
}

func (e *openRouterHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// Message pulls the provider error message out of the body, best-effort.
func (e *openRouterHTTPError) Message() string {
	if e == nil {
		return ""
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(e.Body)
}

// isProviderUnavailable reports whether a candidate failed with the 404
// "no eligible provider for this model" signature, the only failure class
// that advances the fallback loop.
func isProviderUnavailable(err *openRouterHTTPError) bool {
	if err == nil || err.StatusCode != http.StatusNotFound {
		return false
	}
	msg := strings.ToLower(err.Message())
	if msg == "" {
		return true
	}
	return strings.Contains(msg, "no endpoints") ||
		strings.Contains(msg, "provider") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "no allowed")
}

// FallbackError is the terminal failure of the fallback loop: either every
// candidate hit the provider-unavailable signature, or one candidate failed
// with a non-retryable error. Callers surface it as a recoverable payload,
// not a transport failure.
type FallbackError struct {
	Tried        []string
	Status       int
	RequestID    string
	Message      string
	MessageCount int
	Err          error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("all candidate models failed (tried %s): %s",
		strings.Join(e.Tried, ", "), e.Message)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// LastModel is the candidate the loop stopped on.
func (e *FallbackError) LastModel() string {
	if e == nil || len(e.Tried) == 0 {
		return ""
	}
	return e.Tried[len(e.Tried)-1]
}

func (c *client) candidates(ctx context.Context, requested string) []string {
	available, err := c.availableModels(ctx)
	if err != nil {
		c.log.Warn("Model availability lookup failed; using unfiltered candidates", "error", err.Error())
		available = nil
	}
	return BuildCandidates(requested, c.model, c.fallbacks, available)
}

func (c *client) Complete(ctx context.Context, model string, messages []ChatMessage, params ChatParams) (*ChatCompletion, error) {
	var tried []string
	for _, candidate := range c.candidates(ctx, model) {
		tried = append(tried, candidate)

		out, httpErr, err := c.completeOnce(ctx, candidate, messages, params)
		if err != nil {
			return nil, err
		}
		if httpErr == nil {
			return out, nil
		}
		if isProviderUnavailable(httpErr) {
			c.log.Warn("Model unavailable; trying next candidate",
				"model", candidate,
				"status", httpErr.StatusCode,
			)
			continue
		}
		return nil, &FallbackError{
			Tried:        tried,
			Status:       httpErr.StatusCode,
			RequestID:    httpErr.RequestID,
			Message:      httpErr.Message(),
			MessageCount: len(messages),
			Err:          httpErr,
		}
	}
	return nil, c.exhausted(tried, messages)
}

func (c *client) Stream(ctx context.Context, model string, messages []ChatMessage, params ChatParams) (*ChatStream, error) {
	var tried []string
	for _, candidate := range c.candidates(ctx, model) {
		tried = append(tried, candidate)

		stream, httpErr, err := c.streamOnce(ctx, candidate, messages, params)
		if err != nil {
			return nil, err
		}
		if httpErr == nil {
			return stream, nil
		}
		if isProviderUnavailable(httpErr) {
			c.log.Warn("Model unavailable; trying next candidate",
				"model", candidate,
				"status", httpErr.StatusCode,
			)
			continue
		}
		return nil, &FallbackError{
			Tried:        tried,
			Status:       httpErr.StatusCode,
			RequestID:    httpErr.RequestID,
			Message:      httpErr.Message(),
			MessageCount: len(messages),
			Err:          httpErr,
		}
	}
	return nil, c.exhausted(tried, messages)
}

func (c *client) exhausted(tried []string, messages []ChatMessage) *FallbackError {
	return &FallbackError{
		Tried:        tried,
		Message:      "no candidate model produced a completion",
		MessageCount: len(messages),
	}
}

// completeOnce issues one non-retrying chat-completion call. HTTP-level
// failures come back as the second return so the fallback loop can classify
// them; the third return is reserved for transport and decode errors.
func (c *client) completeOnce(ctx context.Context, model string, messages []ChatMessage, params ChatParams) (*ChatCompletion, *openRouterHTTPError, error) {
	req := chatCompletionRequest{
		Model:          model,
		Messages:       messages,
		Temperature:    params.Temperature,
		TopP:           params.TopP,
		MaxTokens:      params.MaxTokens,
		ResponseFormat: params.ResponseFormat,
	}

	resp, raw, err := c.doOnce(ctx, "POST", "/v1/chat/completions", req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &openRouterHTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			RequestID:  resp.Header.Get("X-Request-Id"),
		}, nil
	}

	var out ChatCompletion
	if uErr := json.Unmarshal(raw, &out); uErr != nil {
		return nil, nil, fmt.Errorf("openrouter decode error: %w; raw=%s", uErr, string(raw))
	}
	out.Raw = append(json.RawMessage(nil), raw...)
	return &out, nil, nil
}

func (c *client) streamOnce(ctx context.Context, model string, messages []ChatMessage, params ChatParams) (*ChatStream, *openRouterHTTPError, error) {
	body := chatCompletionRequest{
		Model:          model,
		Messages:       messages,
		Temperature:    params.Temperature,
		TopP:           params.TopP,
		MaxTokens:      params.MaxTokens,
		Stream:         true,
		ResponseFormat: params.ResponseFormat,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &openRouterHTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			RequestID:  resp.Header.Get("X-Request-Id"),
		}, nil
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = "text/event-stream"
	}
	return &ChatStream{Model: model, ContentType: contentType, Body: resp.Body}, nil, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	return resp, raw, nil
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels fetches the model identifiers usable with this credential.
func (c *client) ListModels(ctx context.Context) ([]string, error) {
	resp, raw, err := c.doOnce(ctx, "GET", "/v1/models", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &openRouterHTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
			RequestID:  resp.Header.Get("X-Request-Id"),
		}
	}

	var out modelsResponse
	if uErr := json.Unmarshal(raw, &out); uErr != nil {
		return nil, fmt.Errorf("openrouter models decode error: %w", uErr)
	}
	ids := make([]string, 0, len(out.Data))
	for _, m := range out.Data {
		if id := strings.TrimSpace(m.ID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// availableModels consults the TTL cache before hitting the live endpoint.
// Failure here only disables candidate filtering.
func (c *client) availableModels(ctx context.Context) ([]string, error) {
	if ids, ok := c.models.get(ctx); ok {
		return ids, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ids, err := c.ListModels(lookupCtx)
	if err != nil {
		return nil, err
	}
	c.models.put(ctx, ids)
	return ids, nil
}
