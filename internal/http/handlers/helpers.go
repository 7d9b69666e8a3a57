package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/ctxutil"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

// currentProfile resolves the caller's profile, creating it on first
// access. On failure it has already written the error response.
func currentProfile(c *gin.Context, profiles services.ProfileService) (*types.Profile, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("no authenticated user"))
		return nil, false
	}
	prof, err := profiles.EnsureForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "profile_unavailable", err)
		return nil, false
	}
	return prof, true
}

// unavailablePayload renders provider exhaustion as an HTTP 200 body so
// the client can degrade gracefully instead of treating the turn as a
// transport failure.
func unavailablePayload(fe *openrouter.FallbackError) gin.H {
	return gin.H{
		"error": gin.H{
			"message": "I ran into an issue reaching my model provider. Please try again shortly.",
			"code":    "provider_unavailable",
		},
		"models_tried":  fe.Tried,
		"status":        fe.Status,
		"request_id":    fe.RequestID,
		"message_count": fe.MessageCount,
		"detail":        fe.Message,
	}
}
