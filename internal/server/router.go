package server

import (
	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/http/handlers"
	"github.com/stoiccoach/stoic-coach-backend/internal/http/middleware"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *middleware.AuthMiddleware

	HealthHandler      *handlers.HealthHandler
	CoachHandler       *handlers.CoachHandler
	CompletionsHandler *handlers.CompletionsHandler
	ProfileHandler     *handlers.ProfileHandler
	OnboardingHandler  *handlers.OnboardingHandler
	MemoryHandler      *handlers.MemoryHandler
	AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Coach
	api.POST("/coach/turn", cfg.CoachHandler.Turn)
	api.POST("/llm/completions", cfg.CompletionsHandler.Complete)

	// Profile
	api.GET("/profile", cfg.ProfileHandler.GetMe)
	api.PATCH("/profile", cfg.ProfileHandler.UpdateMe)

	// Onboarding
	api.GET("/onboarding/next", cfg.OnboardingHandler.NextStep)
	api.PUT("/onboarding/always-never", cfg.OnboardingHandler.PutAlwaysNever)
	api.PUT("/onboarding/agree-disagree", cfg.OnboardingHandler.PutAgreeDisagree)

	// Memory
	api.GET("/memory", cfg.MemoryHandler.GetMemory)

	// Admin
	admin := api.Group("/admin")
	admin.GET("/coach-settings", cfg.AdminHandler.GetSettings)
	admin.PUT("/coach-settings", cfg.AdminHandler.PutSettings)
	admin.GET("/training/:mode", cfg.AdminHandler.GetTraining)
	admin.PUT("/training/:mode", cfg.AdminHandler.PutTraining)

	return router
}
