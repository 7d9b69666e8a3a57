package app

import (
	"gorm.io/gorm"

	coachmod "github.com/stoiccoach/stoic-coach-backend/internal/modules/coach"
	onboardingmod "github.com/stoiccoach/stoic-coach-backend/internal/modules/onboarding"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Profile     services.ProfileService
	CoachConfig services.CoachConfigService

	Coach      coachmod.Usecases
	Onboarding onboardingmod.Usecases
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:        services.NewAuthService(log, cfg.JWTSecretKey),
		Profile:     services.NewProfileService(db, log, repos.Profile),
		CoachConfig: services.NewCoachConfigService(log, repos.CoachCfg),

		Coach: coachmod.New(coachmod.UsecasesDeps{
			Log:      log,
			AI:       clients.AI,
			Profiles: repos.Profile,
			Config:   repos.CoachCfg,
			Memory:   repos.Memory,
		}),
		Onboarding: onboardingmod.New(onboardingmod.UsecasesDeps{
			Log:        log,
			Profiles:   repos.Profile,
			Onboarding: repos.Onboarding,
		}),
	}
}
