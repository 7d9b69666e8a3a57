package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/http/response"
	"github.com/stoiccoach/stoic-coach-backend/internal/modules/onboarding"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

type OnboardingHandler struct {
	onboarding onboarding.Usecases
	profiles   services.ProfileService
}

func NewOnboardingHandler(onboardingUsecases onboarding.Usecases, profiles services.ProfileService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboardingUsecases, profiles: profiles}
}

// GET /api/onboarding/next
func (h *OnboardingHandler) NextStep(c *gin.Context) {
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	step, err := h.onboarding.NextStep(c.Request.Context(), prof)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "onboarding_check_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"step":              step,
		"onboarding_status": prof.OnboardingStatus,
	})
}

// PUT /api/onboarding/always-never
func (h *OnboardingHandler) PutAlwaysNever(c *gin.Context) {
	var record types.AlwaysNever
	if err := c.ShouldBindJSON(&record); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	if err := h.onboarding.SaveAlwaysNever(c.Request.Context(), prof.ID, &record); err != nil {
		h.respondSaveError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"saved": true})
}

// PUT /api/onboarding/agree-disagree
func (h *OnboardingHandler) PutAgreeDisagree(c *gin.Context) {
	var record types.AgreeDisagree
	if err := c.ShouldBindJSON(&record); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	prof, ok := currentProfile(c, h.profiles)
	if !ok {
		return
	}
	if err := h.onboarding.SaveAgreeDisagree(c.Request.Context(), prof.ID, &record); err != nil {
		h.respondSaveError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"saved": true})
}

func (h *OnboardingHandler) respondSaveError(c *gin.Context, err error) {
	if errors.Is(err, onboarding.ErrAnswerOutOfRange) {
		response.RespondError(c, http.StatusBadRequest, "invalid_answer", err)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, "onboarding_save_failed", err)
}
