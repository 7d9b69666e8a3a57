package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

// AdminHandler is the coach-configuration surface. Every route requires
// the profile admin flag.
type AdminHandler struct {
	config   services.CoachConfigService
	profiles services.ProfileService
}

func NewAdminHandler(config services.CoachConfigService, profiles services.ProfileService) *AdminHandler {
	return &AdminHandler{config: config, profiles: profiles}
}

func (h *AdminHandler) requireAdmin(c *gin.Context) (*types.Profile, bool) {
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return nil, false
	}
	if !prof.Admin {
		response.RespondError(c, http.StatusForbidden, "forbidden", nil)
		return nil, false
	}
	return prof, true
}

// GET /api/admin/coach-settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	settings, err := h.config.GetActiveSettings(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "settings_read_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"settings": settings})
}

// PUT /api/admin/coach-settings
func (h *AdminHandler) PutSettings(c *gin.Context) {
	prof, ok := h.requireAdmin(c)
	if !ok {
		return
	}
	var settings types.CoachSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	saved, err := h.config.PutSettings(c.Request.Context(), &settings, prof.ID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "settings_write_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"settings": saved})
}

// GET /api/admin/training/:mode
func (h *AdminHandler) GetTraining(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	training, err := h.config.GetTraining(c.Request.Context(), c.Param("mode"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "training_read_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"training": training})
}

type putTrainingReq struct {
	Instructions string `json:"instructions"`
}

// PUT /api/admin/training/:mode
func (h *AdminHandler) PutTraining(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req putTrainingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	training, err := h.config.PutTraining(c.Request.Context(), c.Param("mode"), req.Instructions)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "training_write_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"training": training})
}
