package app

import (
	"github.com/stoiccoach/stoic-coach-backend/internal/http/middleware"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, services.Auth),
	}
}
