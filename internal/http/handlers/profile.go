package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
}

func NewProfileHandler(profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GET /api/profile
func (h *ProfileHandler) GetMe(c *gin.Context) {
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// PATCH /api/profile
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var updates services.ProfileUpdates
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	updated, err := h.profiles.Update(c.Request.Context(), prof.ID, updates)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": updated})
}
