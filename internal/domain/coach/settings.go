package coach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CoachSettings is one configuration record for the coaching persona. If
// several rows are active the most recently updated one wins; uniqueness is
// not enforced at the schema level.
type CoachSettings struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Persona          string         `gorm:"type:text;column:persona" json:"persona"`
	Principles       datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:principles" json:"principles"`
	SafetyBoundaries string         `gorm:"type:text;column:safety_boundaries" json:"safety_boundaries"`
	ProhibitedTopics string         `gorm:"type:text;column:prohibited_topics" json:"prohibited_topics"`
	EscalationPolicy string         `gorm:"type:text;column:escalation_policy" json:"escalation_policy"`
	SessionOpening   string         `gorm:"type:text;column:session_opening" json:"session_opening"`
	SessionClosing   string         `gorm:"type:text;column:session_closing" json:"session_closing"`
	ResponseStyle    string         `gorm:"column:response_style" json:"response_style"`
	CustomTools      datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:custom_tools" json:"custom_tools"`

	IsActive         bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedByProfile *uuid.UUID `gorm:"type:uuid;column:created_by_profile" json:"created_by_profile,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();index" json:"updated_at"`
}

func (CoachSettings) TableName() string { return "ai_therapist_settings" }

// TrainingMode maps a mode name to its latest supplementary instruction
// text. History rows may exist; the newest row per mode is the current one.
type TrainingMode struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Mode         string `gorm:"type:text;not null;index;column:mode" json:"mode"`
	Instructions string `gorm:"type:text;not null;column:instructions" json:"instructions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();index" json:"updated_at"`
}

func (TrainingMode) TableName() string { return "ai_training" }
