package onboarding

import (
	"context"

	"github.com/google/uuid"

	onboardingrepo "github.com/stoiccoach/stoic-coach-backend/internal/data/repos/onboarding"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/modules/onboarding/steps"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

const (
	StepAlwaysNever   = steps.StepAlwaysNever
	StepAgreeDisagree = steps.StepAgreeDisagree
	StepComplete      = steps.StepComplete
)

var ErrAnswerOutOfRange = steps.ErrAnswerOutOfRange

type UsecasesDeps struct {
	Log        *logger.Logger
	Profiles   profile.ProfileRepo
	Onboarding onboardingrepo.OnboardingRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

// NextStep reports which questionnaire the profile still has to finish,
// promoting the onboarding status once both are done.
func (u Usecases) NextStep(ctx context.Context, prof *types.Profile) (string, error) {
	return steps.NextStep(ctx, steps.NextDeps{
		Log:        u.deps.Log,
		Profiles:   u.deps.Profiles,
		Onboarding: u.deps.Onboarding,
	}, prof)
}

func (u Usecases) SaveAlwaysNever(ctx context.Context, profileID uuid.UUID, record *types.AlwaysNever) error {
	return steps.SaveAlwaysNever(ctx, steps.SaveDeps{
		Log:        u.deps.Log,
		Onboarding: u.deps.Onboarding,
	}, profileID, record)
}

func (u Usecases) SaveAgreeDisagree(ctx context.Context, profileID uuid.UUID, record *types.AgreeDisagree) error {
	return steps.SaveAgreeDisagree(ctx, steps.SaveDeps{
		Log:        u.deps.Log,
		Onboarding: u.deps.Onboarding,
	}, profileID, record)
}
