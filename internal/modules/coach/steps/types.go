package steps

// CoachConfig is the effective persona/safety/style configuration for one
// turn, after defaults have been substituted for anything missing.
type CoachConfig struct {
	Persona          string
	Principles       []string
	SafetyBoundaries string
	ProhibitedTopics string
	EscalationPolicy string
	SessionOpening   string
	SessionClosing   string
	ResponseStyle    string
	ModeInstructions string
}

// KnownContext is the small personalization slice pulled for the prompt:
// display name, up to 3 recent goal titles, up to 5 recent relationship
// names.
type KnownContext struct {
	DisplayName       string
	GoalTitles        []string
	RelationshipNames []string
}

type GoalFact struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type RelationshipDetailFact struct {
	HowWeMet          string   `json:"how_we_met,omitempty"`
	PersonalityTraits []string `json:"personality_traits,omitempty"`
	Interests         []string `json:"interests,omitempty"`
}

type RelationshipFact struct {
	Name             string                  `json:"name"`
	RelationshipType string                  `json:"relationship_type,omitempty"`
	Details          *RelationshipDetailFact `json:"details,omitempty"`
}

// ExtractedFacts is the six-category extraction result. All slices are
// non-nil after parsing; a failed extraction degrades to EmptyFacts.
type ExtractedFacts struct {
	Values        []string           `json:"values"`
	Boundaries    []string           `json:"boundaries"`
	StuckPoints   []string           `json:"stuck_points"`
	Goals         []GoalFact         `json:"goals"`
	Relationships []RelationshipFact `json:"relationships"`
	Notes         []string           `json:"notes"`
}

func EmptyFacts() ExtractedFacts {
	return ExtractedFacts{
		Values:        []string{},
		Boundaries:    []string{},
		StuckPoints:   []string{},
		Goals:         []GoalFact{},
		Relationships: []RelationshipFact{},
		Notes:         []string{},
	}
}

// SavedCounts reports how many genuinely new items each category persisted.
type SavedCounts struct {
	Values        int `json:"values"`
	Boundaries    int `json:"boundaries"`
	StuckPoints   int `json:"stuck_points"`
	Goals         int `json:"goals"`
	Relationships int `json:"relationships"`
	Notes         int `json:"notes"`
}
