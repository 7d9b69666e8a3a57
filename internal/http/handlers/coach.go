package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/modules/coach"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

type CoachHandler struct {
	log      *logger.Logger
	coach    coach.Usecases
	ai       openrouter.Client
	profiles services.ProfileService
}

func NewCoachHandler(log *logger.Logger, coachUsecases coach.Usecases, ai openrouter.Client, profiles services.ProfileService) *CoachHandler {
	return &CoachHandler{log: log, coach: coachUsecases, ai: ai, profiles: profiles}
}

type coachTurnReq struct {
	Messages []openrouter.ChatMessage `json:"messages"`
	Mode     string                   `json:"mode"`
}

// POST /api/coach/turn
func (h *CoachHandler) Turn(c *gin.Context) {
	var req coachTurnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if len(req.Messages) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("messages array required"))
		return
	}
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}

	var mode *string
	if req.Mode != "" {
		mode = &req.Mode
	}
	if h.ai == nil {
		response.RespondOK(c, gin.H{
			"reply":         "I'm here to help. It looks like my AI backend isn't configured yet.",
			"memoriesSaved": coach.SavedCounts{},
			"mode":          mode,
		})
		return
	}

	out, err := h.coach.Turn(c.Request.Context(), coach.TurnInput{
		Profile:  prof,
		Messages: req.Messages,
		Mode:     req.Mode,
	})
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "coach_turn_failed", err)
		return
	}
	if out.Unavailable != nil {
		response.RespondOK(c, unavailablePayload(out.Unavailable))
		return
	}
	response.RespondOK(c, gin.H{
		"reply":         out.Reply,
		"memoriesSaved": out.Saved,
		"mode":          mode,
	})
}
