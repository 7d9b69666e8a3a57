package app

import (
	"github.com/stoiccoach/stoic-coach-backend/internal/http/handlers"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Coach       *handlers.CoachHandler
	Completions *handlers.CompletionsHandler
	Profile     *handlers.ProfileHandler
	Onboarding  *handlers.OnboardingHandler
	Memory      *handlers.MemoryHandler
	Admin       *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      handlers.NewHealthHandler(),
		Coach:       handlers.NewCoachHandler(log, services.Coach, clients.AI, services.Profile),
		Completions: handlers.NewCompletionsHandler(log, clients.AI),
		Profile:     handlers.NewProfileHandler(services.Profile),
		Onboarding:  handlers.NewOnboardingHandler(services.Onboarding, services.Profile),
		Memory:      handlers.NewMemoryHandler(services.Coach, services.Profile),
		Admin:       handlers.NewAdminHandler(services.CoachConfig, services.Profile),
	}
}
