package app

import (
	"gorm.io/gorm"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/coachcfg"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/memory"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/onboarding"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type Repos struct {
	Profile    profile.ProfileRepo
	CoachCfg   coachcfg.CoachConfigRepo
	Memory     memory.MemoryRepo
	Onboarding onboarding.OnboardingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:    profile.NewProfileRepo(db, log),
		CoachCfg:   coachcfg.NewCoachConfigRepo(db, log),
		Memory:     memory.NewMemoryRepo(db, log),
		Onboarding: onboarding.NewOnboardingRepo(db, log),
	}
}
