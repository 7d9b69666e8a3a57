package app

import (
	"github.com/gin-gonic/gin"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                log,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		CoachHandler:       handlers.Coach,
		CompletionsHandler: handlers.Completions,
		ProfileHandler:     handlers.Profile,
		OnboardingHandler:  handlers.Onboarding,
		MemoryHandler:      handlers.Memory,
		AdminHandler:       handlers.Admin,
	})
}
