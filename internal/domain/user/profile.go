package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OnboardingStatusOnboarding = "onboarding"
	OnboardingStatusComplete   = "complete"
)

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`

	DisplayName string `gorm:"column:display_name" json:"display_name"`
	AvatarURL   string `gorm:"column:avatar_url" json:"avatar_url"`
	Bio         string `gorm:"type:text;column:bio" json:"bio"`
	Admin       bool   `gorm:"not null;default:false;column:admin" json:"admin"`

	// Accumulated facts keyed by category (values, notes, ...).
	MemoryStore datatypes.JSON `gorm:"type:jsonb;not null;default:'{}';column:memory_store" json:"memory_store"`

	OnboardingStatus string `gorm:"type:text;not null;default:'onboarding';column:onboarding_status" json:"onboarding_status"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
