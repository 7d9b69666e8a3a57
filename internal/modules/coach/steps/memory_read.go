package steps

import (
	"context"

	"github.com/google/uuid"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/memory"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

// MemorySnapshot is the read model for the six fact categories.
type MemorySnapshot struct {
	Values        []string             `json:"values"`
	Notes         []string             `json:"notes"`
	Boundaries    []string             `json:"boundaries"`
	StuckPoints   []string             `json:"stuck_points"`
	Goals         []GoalFact           `json:"goals"`
	Relationships []RelationshipEntry  `json:"relationships"`
}

type RelationshipEntry struct {
	Name             string                  `json:"name"`
	RelationshipType string                  `json:"relationship_type"`
	Details          *RelationshipDetailFact `json:"details,omitempty"`
}

type MemoryReadDeps struct {
	Log    *logger.Logger
	Memory memory.MemoryRepo
}

// ReadMemory gathers everything known about a profile across the JSON
// memory store and the row-backed categories.
func ReadMemory(ctx context.Context, deps MemoryReadDeps, prof *types.Profile) (MemorySnapshot, error) {
	store := decodeMemoryStore(prof.MemoryStore)
	out := MemorySnapshot{
		Values:        stringList(store["values"]),
		Notes:         stringList(store["notes"]),
		Boundaries:    []string{},
		StuckPoints:   []string{},
		Goals:         []GoalFact{},
		Relationships: []RelationshipEntry{},
	}
	if out.Values == nil {
		out.Values = []string{}
	}
	if out.Notes == nil {
		out.Notes = []string{}
	}

	boundaries, err := deps.Memory.ListBoundaries(ctx, nil, prof.ID)
	if err != nil {
		return out, err
	}
	for _, row := range boundaries {
		out.Boundaries = append(out.Boundaries, row.Boundary)
	}

	points, err := deps.Memory.ListStuckPoints(ctx, nil, prof.ID)
	if err != nil {
		return out, err
	}
	for _, row := range points {
		out.StuckPoints = append(out.StuckPoints, row.Point)
	}

	goals, err := deps.Memory.ListGoals(ctx, nil, prof.ID)
	if err != nil {
		return out, err
	}
	for _, row := range goals {
		goal := GoalFact{Title: row.Title}
		if row.Description != nil {
			goal.Description = *row.Description
		}
		out.Goals = append(out.Goals, goal)
	}

	rels, err := deps.Memory.ListRelationships(ctx, nil, prof.ID)
	if err != nil {
		return out, err
	}
	relIDs := make([]uuid.UUID, 0, len(rels))
	for _, row := range rels {
		relIDs = append(relIDs, row.ID)
	}
	details, err := deps.Memory.ListRelationshipDetails(ctx, nil, relIDs)
	if err != nil {
		deps.Log.Warn("Relationship details read failed", "profile_id", prof.ID.String(), "error", err.Error())
		details = nil
	}
	detailByRel := map[uuid.UUID]*types.RelationshipDetail{}
	for _, d := range details {
		detailByRel[d.RelationshipID] = d
	}

	for _, row := range rels {
		entry := RelationshipEntry{Name: row.Name, RelationshipType: row.RelationshipType}
		if d, ok := detailByRel[row.ID]; ok {
			fact := &RelationshipDetailFact{
				PersonalityTraits: decodeStringArray(d.PersonalityTraits),
				Interests:         decodeStringArray(d.Interests),
			}
			if d.HowWeMet != nil {
				fact.HowWeMet = *d.HowWeMet
			}
			entry.Details = fact
		}
		out.Relationships = append(out.Relationships, entry)
	}

	return out, nil
}
