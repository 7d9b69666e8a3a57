package steps

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"gorm.io/datatypes"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
)

const extractionSystemPrompt = `You extract structured, stable user information from a chat turn.
Only include items you are highly confident about and that are NEW relative to KNOWN_MEMORY.
Return STRICT JSON matching this schema (no commentary):
{
  "values": string[],
  "boundaries": string[],
  "stuck_points": string[],
  "goals": { "title": string, "description"?: string }[],
  "relationships": { "name": string, "relationship_type"?: string, "details"?: { "how_we_met"?: string, "personality_traits"?: string[], "interests"?: string[] } }[],
  "notes": string[]
}`

const (
	knownMemoryLimit    = 4000
	extractionMaxTokens = 500
)

type ExtractDeps struct {
	Log *logger.Logger
	AI  openrouter.Client
}

// ExtractFacts runs the deterministic second completion that distills new
// memory facts from the turn. It is best-effort all the way down: provider
// or parse failures degrade to empty facts, never to an error.
func ExtractFacts(ctx context.Context, deps ExtractDeps, knownMemory datatypes.JSON, lastUserMessage, reply string) ExtractedFacts {
	temp := 0.0
	out, err := deps.AI.Complete(ctx, "",
		[]openrouter.ChatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: BuildExtractionInput(knownMemory, lastUserMessage, reply)},
		},
		openrouter.ChatParams{Temperature: &temp, MaxTokens: extractionMaxTokens},
	)
	if err != nil {
		deps.Log.Warn("Memory extraction call failed", "error", err.Error())
		return EmptyFacts()
	}
	return ParseExtraction(out.ReplyText())
}

// BuildExtractionInput assembles the user message for the extraction call.
// Known memory is truncated so a large store cannot crowd out the turn.
func BuildExtractionInput(knownMemory datatypes.JSON, lastUserMessage, reply string) string {
	known := string(knownMemory)
	if strings.TrimSpace(known) == "" {
		known = "{}"
	}
	if len(known) > knownMemoryLimit {
		known = known[:knownMemoryLimit]
	}
	return strings.Join([]string{
		"KNOWN_MEMORY: " + known,
		"LAST_USER_MESSAGE: " + lastUserMessage,
		"ASSISTANT_REPLY: " + reply,
		"Extract only if confident and helpful. If nothing new, return empty arrays.",
	}, "\n\n")
}

var (
	openFenceRe  = regexp.MustCompile("(?i)^```(?:json)?")
	closeFenceRe = regexp.MustCompile("```$")
)

// StripCodeFences removes a leading ``` or ```json marker and a trailing
// ``` marker so fenced model output still parses.
func StripCodeFences(s string) string {
	s = openFenceRe.ReplaceAllString(s, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseExtraction parses the model's JSON defensively. A non-object result
// yields empty facts; each field is independently coerced to empty when it
// is not the expected array shape.
func ParseExtraction(raw string) ExtractedFacts {
	out := EmptyFacts()

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &parsed); err != nil || parsed == nil {
		return out
	}

	coerce(parsed["values"], &out.Values)
	coerce(parsed["boundaries"], &out.Boundaries)
	coerce(parsed["stuck_points"], &out.StuckPoints)
	coerce(parsed["goals"], &out.Goals)
	coerce(parsed["relationships"], &out.Relationships)
	coerce(parsed["notes"], &out.Notes)
	return out
}

// coerce leaves dst untouched (empty) unless raw unmarshals cleanly into it.
func coerce[T any](raw json.RawMessage, dst *[]T) {
	if len(raw) == 0 {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return
	}
	*dst = items
}
