package steps

import (
	"context"

	onboardingrepo "github.com/stoiccoach/stoic-coach-backend/internal/data/repos/onboarding"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type NextDeps struct {
	Log        *logger.Logger
	Profiles   profile.ProfileRepo
	Onboarding onboardingrepo.OnboardingRepo
}

// NextStep routes the two-step questionnaire: always/never first, then
// agree/disagree, then done. Reaching the end promotes the profile's
// onboarding status to complete.
func NextStep(ctx context.Context, deps NextDeps, prof *types.Profile) (string, error) {
	alwaysNever, err := deps.Onboarding.GetAlwaysNever(ctx, nil, prof.ID)
	if err != nil {
		return "", err
	}
	if !AlwaysNeverComplete(alwaysNever) {
		return StepAlwaysNever, nil
	}

	agreeDisagree, err := deps.Onboarding.GetAgreeDisagree(ctx, nil, prof.ID)
	if err != nil {
		return "", err
	}
	if !AgreeDisagreeComplete(agreeDisagree) {
		return StepAgreeDisagree, nil
	}

	if prof.OnboardingStatus != types.OnboardingStatusComplete {
		if err := deps.Profiles.SetOnboardingStatus(ctx, nil, prof.ID, types.OnboardingStatusComplete); err != nil {
			return "", err
		}
		prof.OnboardingStatus = types.OnboardingStatusComplete
	}
	return StepComplete, nil
}
