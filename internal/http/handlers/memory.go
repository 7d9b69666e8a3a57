package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/modules/coach"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

type MemoryHandler struct {
	coach    coach.Usecases
	profiles services.ProfileService
}

func NewMemoryHandler(coachUsecases coach.Usecases, profiles services.ProfileService) *MemoryHandler {
	return &MemoryHandler{coach: coachUsecases, profiles: profiles}
}

// GET /api/memory
func (h *MemoryHandler) GetMemory(c *gin.Context) {
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	snapshot, err := h.coach.ReadMemory(c.Request.Context(), prof)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "memory_read_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"memory": snapshot})
}
