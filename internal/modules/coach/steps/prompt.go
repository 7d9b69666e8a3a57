package steps

import (
	"fmt"
	"strings"
)

// Fixed behavioral directives appended to every system prompt.
const (
	directiveTone        = "Always be warm, curious, and non-interrogative. At most one gentle follow-up question when it helps move the user forward."
	directivePersonalize = "Personalize using the KNOWN PROFILE CONTEXT when relevant."
	directiveNatural     = "If the user shares new stable personal info (values, boundaries, stuck points, goals, relationships), respond naturally first."
)

// ComposeSystemPrompt deterministically assembles the system prompt. Each
// optional section appears only when non-empty, in a fixed order, joined by
// blank lines.
func ComposeSystemPrompt(cfg CoachConfig, mode string, known KnownContext) string {
	modeLabel := strings.TrimSpace(mode)
	if modeLabel == "" {
		modeLabel = "default"
	}

	var contextPieces []string
	if known.DisplayName != "" {
		contextPieces = append(contextPieces, "Name: "+known.DisplayName)
	}
	if len(known.GoalTitles) > 0 {
		contextPieces = append(contextPieces, "Recent goals: "+strings.Join(known.GoalTitles, ", "))
	}
	if len(known.RelationshipNames) > 0 {
		contextPieces = append(contextPieces, "People mentioned: "+strings.Join(known.RelationshipNames, ", "))
	}

	sections := []string{
		cfg.Persona,
		section(len(cfg.Principles) > 0, "Guiding principles: "+strings.Join(cfg.Principles, "; ")),
		section(cfg.SafetyBoundaries != "", "Safety boundaries: "+cfg.SafetyBoundaries),
		section(cfg.ProhibitedTopics != "", "Prohibited topics: "+cfg.ProhibitedTopics),
		section(cfg.EscalationPolicy != "", "Escalation policy: "+cfg.EscalationPolicy),
		section(cfg.SessionOpening != "", "Session opening guidance: "+cfg.SessionOpening),
		section(cfg.SessionClosing != "", "Session closing guidance: "+cfg.SessionClosing),
		section(cfg.ModeInstructions != "", fmt.Sprintf("Mode instructions (%s): %s", modeLabel, cfg.ModeInstructions)),
		directiveTone,
		directivePersonalize,
		section(len(contextPieces) > 0, "KNOWN PROFILE CONTEXT: "+strings.Join(contextPieces, " | ")),
		directiveNatural,
	}

	kept := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

func section(include bool, text string) string {
	if !include {
		return ""
	}
	return text
}
