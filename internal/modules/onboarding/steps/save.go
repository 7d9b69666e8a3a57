package steps

import (
	"context"

	"github.com/google/uuid"

	onboardingrepo "github.com/stoiccoach/stoic-coach-backend/internal/data/repos/onboarding"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type SaveDeps struct {
	Log        *logger.Logger
	Onboarding onboardingrepo.OnboardingRepo
}

// SaveAlwaysNever upserts the profile's always/never answers, keyed on
// profile_id.
func SaveAlwaysNever(ctx context.Context, deps SaveDeps, profileID uuid.UUID, record *types.AlwaysNever) error {
	if err := validateScale(record.ScaleFields()); err != nil {
		return err
	}
	record.ProfileID = profileID
	return deps.Onboarding.UpsertAlwaysNever(ctx, nil, record)
}

// SaveAgreeDisagree upserts the profile's agree/disagree answers.
func SaveAgreeDisagree(ctx context.Context, deps SaveDeps, profileID uuid.UUID, record *types.AgreeDisagree) error {
	if err := validateScale(record.ScaleFields()); err != nil {
		return err
	}
	record.ProfileID = profileID
	return deps.Onboarding.UpsertAgreeDisagree(ctx, nil, record)
}
