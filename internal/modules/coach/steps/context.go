package steps

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/memory"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

const (
	recentGoalLimit         = 3
	recentRelationshipLimit = 5
)

type ContextDeps struct {
	Log    *logger.Logger
	Memory memory.MemoryRepo
}

// GatherContext pulls the recent goal titles and relationship names used to
// personalize the prompt. Both fetches run in parallel and are best-effort;
// a failed fetch yields an empty list.
func GatherContext(ctx context.Context, deps ContextDeps, profile *types.Profile) KnownContext {
	out := KnownContext{DisplayName: profile.DisplayName}

	var (
		goals []*types.Goal
		rels  []*types.Relationship
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goals, err = deps.Memory.RecentGoals(gctx, nil, profile.ID, recentGoalLimit)
		if err != nil {
			deps.Log.Warn("Recent goals fetch failed", "profile_id", profile.ID.String(), "error", err.Error())
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rels, err = deps.Memory.RecentRelationships(gctx, nil, profile.ID, recentRelationshipLimit)
		if err != nil {
			deps.Log.Warn("Recent relationships fetch failed", "profile_id", profile.ID.String(), "error", err.Error())
		}
		return nil
	})
	_ = g.Wait()

	for _, goal := range goals {
		out.GoalTitles = append(out.GoalTitles, goal.Title)
	}
	for _, rel := range rels {
		out.RelationshipNames = append(out.RelationshipNames, rel.Name)
	}
	return out
}
