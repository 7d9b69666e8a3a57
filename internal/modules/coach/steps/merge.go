package steps

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/memory"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type MergeDeps struct {
	Log      *logger.Logger
	Profiles profile.ProfileRepo
	Memory   memory.MemoryRepo
}

// MergeMemories persists only genuinely new facts and reports per-category
// counts. Each category's write is independent and best-effort: a failure is
// logged and skipped without touching the other categories. Dedup always
// runs against the current persisted state, so replaying an unchanged
// extraction yields zero writes.
func MergeMemories(ctx context.Context, deps MergeDeps, prof *types.Profile, facts ExtractedFacts) SavedCounts {
	var saved SavedCounts

	saved.Values, saved.Notes = mergeMemoryStore(ctx, deps, prof, facts)
	saved.Boundaries = mergeBoundaries(ctx, deps, prof.ID, facts.Boundaries)
	saved.StuckPoints = mergeStuckPoints(ctx, deps, prof.ID, facts.StuckPoints)
	saved.Goals = mergeGoals(ctx, deps, prof.ID, facts.Goals)
	saved.Relationships = mergeRelationships(ctx, deps, prof.ID, facts.Relationships)

	return saved
}

// mergeMemoryStore unions values and notes into the profile's JSON memory
// store (set semantics, case-sensitive) and writes only when something was
// actually added. Other keys in the store pass through untouched.
func mergeMemoryStore(ctx context.Context, deps MergeDeps, prof *types.Profile, facts ExtractedFacts) (valuesAdded, notesAdded int) {
	store := decodeMemoryStore(prof.MemoryStore)

	mergedValues, valuesAdded := unionStrings(stringList(store["values"]), facts.Values)
	mergedNotes, notesAdded := unionStrings(stringList(store["notes"]), facts.Notes)
	if valuesAdded == 0 && notesAdded == 0 {
		return 0, 0
	}

	store["values"] = mergedValues
	store["notes"] = mergedNotes

	raw, err := json.Marshal(store)
	if err != nil {
		deps.Log.Warn("Memory store encode failed", "profile_id", prof.ID.String(), "error", err.Error())
		return 0, 0
	}
	if err := deps.Profiles.UpdateMemoryStore(ctx, nil, prof.ID, datatypes.JSON(raw)); err != nil {
		deps.Log.Warn("Memory store update failed", "profile_id", prof.ID.String(), "error", err.Error())
		return 0, 0
	}
	prof.MemoryStore = datatypes.JSON(raw)
	return valuesAdded, notesAdded
}

func mergeBoundaries(ctx context.Context, deps MergeDeps, profileID uuid.UUID, items []string) int {
	if len(items) == 0 {
		return 0
	}

	existing, err := deps.Memory.ListBoundaries(ctx, nil, profileID)
	if err != nil {
		deps.Log.Warn("Boundaries read failed; skipping category", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	seen := map[string]bool{}
	for _, row := range existing {
		seen[strings.ToLower(row.Boundary)] = true
	}

	var toInsert []*types.Boundary
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[strings.ToLower(item)] {
			continue
		}
		seen[strings.ToLower(item)] = true
		toInsert = append(toInsert, &types.Boundary{ProfileID: profileID, Boundary: item})
	}
	if len(toInsert) == 0 {
		return 0
	}
	if err := deps.Memory.InsertBoundaries(ctx, nil, toInsert); err != nil {
		deps.Log.Warn("Boundaries insert failed", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	return len(toInsert)
}

func mergeStuckPoints(ctx context.Context, deps MergeDeps, profileID uuid.UUID, items []string) int {
	if len(items) == 0 {
		return 0
	}

	existing, err := deps.Memory.ListStuckPoints(ctx, nil, profileID)
	if err != nil {
		deps.Log.Warn("Stuck points read failed; skipping category", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	seen := map[string]bool{}
	for _, row := range existing {
		seen[strings.ToLower(row.Point)] = true
	}

	var toInsert []*types.StuckPoint
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[strings.ToLower(item)] {
			continue
		}
		seen[strings.ToLower(item)] = true
		toInsert = append(toInsert, &types.StuckPoint{ProfileID: profileID, Point: item})
	}
	if len(toInsert) == 0 {
		return 0
	}
	if err := deps.Memory.InsertStuckPoints(ctx, nil, toInsert); err != nil {
		deps.Log.Warn("Stuck points insert failed", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	return len(toInsert)
}

func mergeGoals(ctx context.Context, deps MergeDeps, profileID uuid.UUID, items []GoalFact) int {
	if len(items) == 0 {
		return 0
	}

	existing, err := deps.Memory.ListGoals(ctx, nil, profileID)
	if err != nil {
		deps.Log.Warn("Goals read failed; skipping category", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	seen := map[string]bool{}
	for _, row := range existing {
		seen[strings.ToLower(row.Title)] = true
	}

	var toInsert []*types.Goal
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" || seen[strings.ToLower(title)] {
			continue
		}
		seen[strings.ToLower(title)] = true
		goal := &types.Goal{ProfileID: profileID, Title: title}
		if desc := item.Description; desc != "" {
			goal.Description = &desc
		}
		toInsert = append(toInsert, goal)
	}
	if len(toInsert) == 0 {
		return 0
	}
	if err := deps.Memory.InsertGoals(ctx, nil, toInsert); err != nil {
		deps.Log.Warn("Goals insert failed", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	return len(toInsert)
}

// mergeRelationships inserts rows for names not already known, defaulting
// the type to "unknown". A detail record rides along only when the
// relationship itself is new; repeat mentions never update details.
func mergeRelationships(ctx context.Context, deps MergeDeps, profileID uuid.UUID, items []RelationshipFact) int {
	if len(items) == 0 {
		return 0
	}

	existing, err := deps.Memory.ListRelationships(ctx, nil, profileID)
	if err != nil {
		deps.Log.Warn("Relationships read failed; skipping category", "profile_id", profileID.String(), "error", err.Error())
		return 0
	}
	seen := map[string]bool{}
	for _, row := range existing {
		seen[strings.ToLower(row.Name)] = true
	}

	saved := 0
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}

		relType := strings.TrimSpace(item.RelationshipType)
		if relType == "" {
			relType = "unknown"
		}
		rel := &types.Relationship{ProfileID: profileID, Name: name, RelationshipType: relType}
		if err := deps.Memory.InsertRelationship(ctx, nil, rel); err != nil {
			deps.Log.Warn("Relationship insert failed", "profile_id", profileID.String(), "error", err.Error())
			continue
		}
		seen[strings.ToLower(name)] = true
		saved++

		if item.Details != nil {
			detail := &types.RelationshipDetail{
				RelationshipID:    rel.ID,
				PersonalityTraits: encodeStringList(item.Details.PersonalityTraits),
				Interests:         encodeStringList(item.Details.Interests),
			}
			if how := strings.TrimSpace(item.Details.HowWeMet); how != "" {
				detail.HowWeMet = &how
			}
			if err := deps.Memory.InsertRelationshipDetail(ctx, nil, detail); err != nil {
				deps.Log.Warn("Relationship detail insert failed", "relationship_id", rel.ID.String(), "error", err.Error())
			}
		}
	}
	return saved
}

// decodeMemoryStore validates the stored blob on read and defaults to an
// empty object when absent or malformed.
func decodeMemoryStore(raw datatypes.JSON) map[string]any {
	store := map[string]any{}
	if len(raw) == 0 {
		return store
	}
	if err := json.Unmarshal(raw, &store); err != nil || store == nil {
		return map[string]any{}
	}
	return store
}

func stringList(val any) []string {
	switch t := val.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// unionStrings appends items not already present, preserving order.
// Comparison is exact (case-sensitive), matching the store's set semantics.
func unionStrings(existing, incoming []string) ([]string, int) {
	merged := append([]string{}, existing...)
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}

	added := 0
	for _, s := range incoming {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		merged = append(merged, s)
		added++
	}
	return merged, added
}

func decodeStringArray(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func encodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
