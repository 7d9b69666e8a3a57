package coach

import (
	"context"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/coachcfg"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/memory"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/modules/coach/steps"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
)

type UsecasesDeps struct {
	Log *logger.Logger
	AI  openrouter.Client

	Profiles profile.ProfileRepo
	Config   coachcfg.CoachConfigRepo
	Memory   memory.MemoryRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

type (
	TurnInput  = steps.TurnInput
	TurnOutput = steps.TurnOutput

	MemorySnapshot = steps.MemorySnapshot
	SavedCounts    = steps.SavedCounts
)

// Turn runs one full coaching exchange for the profile.
func (u Usecases) Turn(ctx context.Context, in TurnInput) (TurnOutput, error) {
	return steps.Turn(ctx, steps.TurnDeps{
		Log:      u.deps.Log,
		AI:       u.deps.AI,
		Profiles: u.deps.Profiles,
		Config:   u.deps.Config,
		Memory:   u.deps.Memory,
	}, in)
}

// ReadMemory returns everything known about the profile across the six
// fact categories.
func (u Usecases) ReadMemory(ctx context.Context, prof *types.Profile) (MemorySnapshot, error) {
	return steps.ReadMemory(ctx, steps.MemoryReadDeps{
		Log:    u.deps.Log,
		Memory: u.deps.Memory,
	}, prof)
}
