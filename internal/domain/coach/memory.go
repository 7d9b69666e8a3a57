package coach

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Row-backed fact categories. Uniqueness within a category is enforced by
// the merger via case-insensitive comparison, not by a constraint.

type Boundary struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index;column:profile_id" json:"profile_id"`

	Boundary string `gorm:"type:text;not null;column:boundary" json:"boundary"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Boundary) TableName() string { return "boundaries" }

type StuckPoint struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index;column:profile_id" json:"profile_id"`

	Point string `gorm:"type:text;not null;column:point" json:"point"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StuckPoint) TableName() string { return "stuck_points" }

type Goal struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index;column:profile_id" json:"profile_id"`

	Title       string  `gorm:"type:text;not null;column:title" json:"title"`
	Description *string `gorm:"type:text;column:description" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Goal) TableName() string { return "goals" }

type Relationship struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index;column:profile_id" json:"profile_id"`

	Name             string `gorm:"type:text;not null;column:name" json:"name"`
	RelationshipType string `gorm:"type:text;not null;default:'unknown';column:relationship_type" json:"relationship_type"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Relationship) TableName() string { return "relationships" }

// RelationshipDetail is attached once, at relationship creation. Repeat
// mentions of an existing relationship do not update it.
type RelationshipDetail struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RelationshipID uuid.UUID `gorm:"type:uuid;not null;index;column:relationship_id" json:"relationship_id"`

	HowWeMet          *string        `gorm:"type:text;column:how_we_met" json:"how_we_met,omitempty"`
	PersonalityTraits datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:personality_traits" json:"personality_traits"`
	Interests         datatypes.JSON `gorm:"type:jsonb;not null;default:'[]';column:interests" json:"interests"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RelationshipDetail) TableName() string { return "relationship_details" }
