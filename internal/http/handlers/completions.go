package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/httpx"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
)

// CompletionsHandler proxies chat completions straight through to the
// provider, with the same candidate fallback as the coach turn.
type CompletionsHandler struct {
	log *logger.Logger
	ai  openrouter.Client
}

func NewCompletionsHandler(log *logger.Logger, ai openrouter.Client) *CompletionsHandler {
	return &CompletionsHandler{log: log, ai: ai}
}

type completionsReq struct {
	Model       string                   `json:"model"`
	Messages    []openrouter.ChatMessage `json:"messages"`
	Prompt      string                   `json:"prompt"`
	Stream      bool                     `json:"stream"`
	Temperature *float64                 `json:"temperature"`
	TopP        *float64                 `json:"top_p"`
	MaxTokens   int                      `json:"max_tokens"`
}

// POST /api/llm/completions
func (h *CompletionsHandler) Complete(c *gin.Context) {
	var req completionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	messages := req.Messages
	if len(messages) == 0 && req.Prompt != "" {
		messages = []openrouter.ChatMessage{{Role: "user", Content: req.Prompt}}
	}
	if len(messages) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("messages or prompt required"))
		return
	}
	if h.ai == nil {
		response.RespondOK(c, gin.H{
			"error": gin.H{"message": "OPENROUTER_API_KEY is not set", "code": "not_configured"},
		})
		return
	}

	params := openrouter.ChatParams{
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}

	if req.Stream {
		stream, err := h.ai.Stream(c.Request.Context(), req.Model, messages, params)
		if err != nil {
			h.respondCompletionError(c, err)
			return
		}
		defer stream.Body.Close()
		contentType := stream.ContentType
		if contentType == "" {
			contentType = "text/event-stream"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, stream.Body); err != nil {
			h.log.Warn("Completion stream copy aborted", "error", err.Error())
		}
		return
	}

	completion, err := h.ai.Complete(c.Request.Context(), req.Model, messages, params)
	if err != nil {
		h.respondCompletionError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", completion.Raw)
}

func (h *CompletionsHandler) respondCompletionError(c *gin.Context, err error) {
	var fe *openrouter.FallbackError
	if errors.As(err, &fe) {
		response.RespondOK(c, unavailablePayload(fe))
		return
	}
	status := httpx.StatusCode(err)
	if status == 0 {
		status = http.StatusBadGateway
	}
	response.RespondError(c, status, "completion_failed", err)
}
