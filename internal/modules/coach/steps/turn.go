package steps

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/coachcfg"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/memory"
	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
)

// Reply generation knobs for the coaching turn.
const (
	turnTemperature = 0.3
	turnTopP        = 0.9
	turnMaxTokens   = 600
)

type TurnDeps struct {
	Log      *logger.Logger
	AI       openrouter.Client
	Profiles profile.ProfileRepo
	Config   coachcfg.CoachConfigRepo
	Memory   memory.MemoryRepo
}

type TurnInput struct {
	Profile  *types.Profile
	Messages []openrouter.ChatMessage
	Mode     string
}

// TurnOutput carries either a reply with saved-memory counts or, when every
// candidate model failed, the diagnostic for a graceful degrade.
type TurnOutput struct {
	Reply       string
	Saved       SavedCounts
	Unavailable *openrouter.FallbackError
}

// Turn runs one coaching exchange: config and context load in parallel, the
// prompt is composed, the reply generated with model fallback, then new
// facts are extracted and merged. Extraction and merge failures never fail
// the turn.
func Turn(ctx context.Context, deps TurnDeps, in TurnInput) (TurnOutput, error) {
	var (
		cfg   CoachConfig
		known KnownContext
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg = LoadConfig(gctx, ConfigLoadDeps{Log: deps.Log, Config: deps.Config}, in.Mode)
		return nil
	})
	g.Go(func() error {
		known = GatherContext(gctx, ContextDeps{Log: deps.Log, Memory: deps.Memory}, in.Profile)
		return nil
	})
	_ = g.Wait()

	systemPrompt := ComposeSystemPrompt(cfg, in.Mode, known)

	conversation := make([]openrouter.ChatMessage, 0, 1+len(in.Messages))
	conversation = append(conversation, openrouter.ChatMessage{Role: "system", Content: systemPrompt})
	conversation = append(conversation, in.Messages...)

	temp, topP := turnTemperature, turnTopP
	completion, err := deps.AI.Complete(ctx, "", conversation, openrouter.ChatParams{
		Temperature: &temp,
		TopP:        &topP,
		MaxTokens:   turnMaxTokens,
	})
	if err != nil {
		var fbErr *openrouter.FallbackError
		if errors.As(err, &fbErr) {
			deps.Log.Warn("All candidate models failed for coaching turn",
				"profile_id", in.Profile.ID.String(),
				"tried", fbErr.Tried,
				"status", fbErr.Status,
			)
			return TurnOutput{Unavailable: fbErr}, nil
		}
		return TurnOutput{}, err
	}

	reply := completion.ReplyText()
	if reply == "" {
		reply = "(no response)"
	}

	lastUser := ""
	if len(in.Messages) > 0 {
		lastUser = in.Messages[len(in.Messages)-1].Content
	}

	facts := ExtractFacts(ctx, ExtractDeps{Log: deps.Log, AI: deps.AI}, in.Profile.MemoryStore, lastUser, reply)
	saved := MergeMemories(ctx, MergeDeps{Log: deps.Log, Profiles: deps.Profiles, Memory: deps.Memory}, in.Profile, facts)

	return TurnOutput{Reply: reply, Saved: saved}, nil
}
