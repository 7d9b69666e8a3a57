package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/testutil"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestOnboardingRepoAlwaysNeverUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewOnboardingRepo(db, testutil.Logger(t))
	ctx := context.Background()
	profileID := uuid.New()

	missing, err := repo.GetAlwaysNever(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("GetAlwaysNever (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetAlwaysNever (missing): expected nil, got %+v", missing)
	}

	if err := repo.UpsertAlwaysNever(ctx, tx, &types.AlwaysNever{
		ID:                        uuid.New(),
		ProfileID:                 profileID,
		MakingPlansPreferSchedule: intPtr(4),
	}); err != nil {
		t.Fatalf("UpsertAlwaysNever (insert): %v", err)
	}

	if err := repo.UpsertAlwaysNever(ctx, tx, &types.AlwaysNever{
		ID:                        uuid.New(),
		ProfileID:                 profileID,
		MakingPlansPreferSchedule: intPtr(2),
		ThrillSeekingFrequency:    intPtr(5),
	}); err != nil {
		t.Fatalf("UpsertAlwaysNever (update): %v", err)
	}

	got, err := repo.GetAlwaysNever(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("GetAlwaysNever: %v", err)
	}
	if got == nil {
		t.Fatal("GetAlwaysNever: expected record")
	}
	if got.MakingPlansPreferSchedule == nil || *got.MakingPlansPreferSchedule != 2 {
		t.Fatalf("upsert did not overwrite: %+v", got)
	}
	if got.ThrillSeekingFrequency == nil || *got.ThrillSeekingFrequency != 5 {
		t.Fatalf("upsert missing new field: %+v", got)
	}
}

func TestOnboardingRepoAgreeDisagreeUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewOnboardingRepo(db, testutil.Logger(t))
	ctx := context.Background()
	profileID := uuid.New()

	if err := repo.UpsertAgreeDisagree(ctx, tx, &types.AgreeDisagree{
		ID:                    uuid.New(),
		ProfileID:             profileID,
		EnergizedByManyPeople: intPtr(3),
	}); err != nil {
		t.Fatalf("UpsertAgreeDisagree: %v", err)
	}

	got, err := repo.GetAgreeDisagree(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("GetAgreeDisagree: %v", err)
	}
	if got == nil || got.EnergizedByManyPeople == nil || *got.EnergizedByManyPeople != 3 {
		t.Fatalf("GetAgreeDisagree: unexpected result: %+v", got)
	}
}
