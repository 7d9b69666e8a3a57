package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/testutil"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
)

func TestMemoryRepoBoundariesAndStuckPoints(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMemoryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	profileID := uuid.New()

	if err := repo.InsertBoundaries(ctx, tx, []*types.Boundary{
		{ID: uuid.New(), ProfileID: profileID, Boundary: "no work calls after 8pm"},
	}); err != nil {
		t.Fatalf("InsertBoundaries: %v", err)
	}
	boundaries, err := repo.ListBoundaries(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("ListBoundaries: %v", err)
	}
	if len(boundaries) != 1 || boundaries[0].Boundary != "no work calls after 8pm" {
		t.Fatalf("ListBoundaries: unexpected result: %+v", boundaries)
	}

	if err := repo.InsertStuckPoints(ctx, tx, []*types.StuckPoint{
		{ID: uuid.New(), ProfileID: profileID, Point: "procrastinates on hard tasks"},
	}); err != nil {
		t.Fatalf("InsertStuckPoints: %v", err)
	}
	points, err := repo.ListStuckPoints(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("ListStuckPoints: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("ListStuckPoints: expected 1, got %d", len(points))
	}
}

func TestMemoryRepoGoalsRecentOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMemoryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	profileID := uuid.New()

	for _, title := range []string{"g1", "g2", "g3", "g4"} {
		if err := repo.InsertGoals(ctx, tx, []*types.Goal{
			{ID: uuid.New(), ProfileID: profileID, Title: title},
		}); err != nil {
			t.Fatalf("InsertGoals(%s): %v", title, err)
		}
	}

	recent, err := repo.RecentGoals(ctx, tx, profileID, 3)
	if err != nil {
		t.Fatalf("RecentGoals: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentGoals: expected 3, got %d", len(recent))
	}

	all, err := repo.ListGoals(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListGoals: expected 4, got %d", len(all))
	}
}

func TestMemoryRepoRelationshipsWithDetails(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMemoryRepo(db, testutil.Logger(t))
	ctx := context.Background()
	profileID := uuid.New()

	rel := &types.Relationship{
		ID:               uuid.New(),
		ProfileID:        profileID,
		Name:             "Dana",
		RelationshipType: "friend",
	}
	if err := repo.InsertRelationship(ctx, tx, rel); err != nil {
		t.Fatalf("InsertRelationship: %v", err)
	}

	howWeMet := "college"
	if err := repo.InsertRelationshipDetail(ctx, tx, &types.RelationshipDetail{
		ID:             uuid.New(),
		RelationshipID: rel.ID,
		HowWeMet:       &howWeMet,
	}); err != nil {
		t.Fatalf("InsertRelationshipDetail: %v", err)
	}

	rels, err := repo.ListRelationships(ctx, tx, profileID)
	if err != nil {
		t.Fatalf("ListRelationships: %v", err)
	}
	if len(rels) != 1 || rels[0].Name != "Dana" {
		t.Fatalf("ListRelationships: unexpected result: %+v", rels)
	}

	details, err := repo.ListRelationshipDetails(ctx, tx, []uuid.UUID{rel.ID})
	if err != nil {
		t.Fatalf("ListRelationshipDetails: %v", err)
	}
	if len(details) != 1 || details[0].HowWeMet == nil || *details[0].HowWeMet != "college" {
		t.Fatalf("ListRelationshipDetails: unexpected result: %+v", details)
	}
}
