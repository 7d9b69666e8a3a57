package domain

import (
	"github.com/stoiccoach/stoic-coach-backend/internal/domain/coach"
	"github.com/stoiccoach/stoic-coach-backend/internal/domain/user"
)

const (
	OnboardingStatusOnboarding = user.OnboardingStatusOnboarding
	OnboardingStatusComplete   = user.OnboardingStatusComplete
)

type Profile = user.Profile
type AlwaysNever = user.AlwaysNever
type AgreeDisagree = user.AgreeDisagree

type CoachSettings = coach.CoachSettings
type TrainingMode = coach.TrainingMode
type Boundary = coach.Boundary
type StuckPoint = coach.StuckPoint
type Goal = coach.Goal
type Relationship = coach.Relationship
type RelationshipDetail = coach.RelationshipDetail

// AllModels feeds AutoMigrate.
func AllModels() []any {
	return []any{
		&user.Profile{},
		&user.AlwaysNever{},
		&user.AgreeDisagree{},
		&coach.CoachSettings{},
		&coach.TrainingMode{},
		&coach.Boundary{},
		&coach.StuckPoint{},
		&coach.Goal{},
		&coach.Relationship{},
		&coach.RelationshipDetail{},
	}
}
