package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/coachcfg"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

const (
	DefaultPersona       = "You are a compassionate, pragmatic Stoic accountability coach."
	DefaultResponseStyle = "concise"
)

type ConfigLoadDeps struct {
	Log    *logger.Logger
	Config coachcfg.CoachConfigRepo
}

// LoadConfig fetches the active settings row and, when a mode was supplied,
// the latest instruction text for that mode. It never fails the turn: any
// read error is logged and the defaults stand.
func LoadConfig(ctx context.Context, deps ConfigLoadDeps, mode string) CoachConfig {
	cfg := CoachConfig{
		Persona:       DefaultPersona,
		Principles:    []string{},
		ResponseStyle: DefaultResponseStyle,
	}

	settings, err := deps.Config.GetActiveSettings(ctx, nil)
	if err != nil {
		deps.Log.Warn("Coach settings read failed; using defaults", "error", err.Error())
	} else if settings != nil {
		if s := strings.TrimSpace(settings.Persona); s != "" {
			cfg.Persona = s
		}
		cfg.Principles = decodePrinciples(settings.Principles)
		cfg.SafetyBoundaries = settings.SafetyBoundaries
		cfg.ProhibitedTopics = settings.ProhibitedTopics
		cfg.EscalationPolicy = settings.EscalationPolicy
		cfg.SessionOpening = settings.SessionOpening
		cfg.SessionClosing = settings.SessionClosing
		if s := strings.TrimSpace(settings.ResponseStyle); s != "" {
			cfg.ResponseStyle = s
		}
	}

	if mode = strings.TrimSpace(mode); mode != "" {
		training, err := deps.Config.GetLatestTraining(ctx, nil, mode)
		if err != nil {
			deps.Log.Warn("Mode instructions read failed", "mode", mode, "error", err.Error())
		} else if training != nil {
			cfg.ModeInstructions = training.Instructions
		}
	}

	return cfg
}

// decodePrinciples tolerates both a JSON string array and a mixed array;
// anything else yields no principles.
func decodePrinciples(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		out := make([]string, 0, len(asStrings))
		for _, s := range asStrings {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	var asAny []any
	if err := json.Unmarshal(raw, &asAny); err == nil {
		out := make([]string, 0, len(asAny))
		for _, item := range asAny {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" && s != "<nil>" {
				out = append(out, s)
			}
		}
		return out
	}

	return []string{}
}
