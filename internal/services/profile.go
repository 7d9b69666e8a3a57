package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/profile"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/apierr"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

// ProfileService resolves the caller's profile, creating it on first
// access so the client never has to race an explicit signup step.
type ProfileService interface {
	EnsureForUser(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	Update(ctx context.Context, profileID uuid.UUID, updates ProfileUpdates) (*types.Profile, error)
}

// ProfileUpdates carries the PATCH surface. Nil means leave unchanged.
type ProfileUpdates struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo profile.ProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo profile.ProfileRepo) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{db: db, log: serviceLog, profileRepo: profileRepo}
}

func (ps *profileService) EnsureForUser(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	existing, err := ps.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	created := &types.Profile{
		UserID:           userID,
		MemoryStore:      datatypes.JSON([]byte(`{}`)),
		OnboardingStatus: types.OnboardingStatusOnboarding,
	}
	if err := ps.profileRepo.Create(ctx, nil, created); err != nil {
		// Two first requests can race the insert; the unique index on
		// user_id makes the loser re-read the winner's row.
		existing, readErr := ps.profileRepo.GetByUserID(ctx, nil, userID)
		if readErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	ps.log.Info("Created profile", "user_id", userID.String())
	return created, nil
}

func (ps *profileService) Update(ctx context.Context, profileID uuid.UUID, updates ProfileUpdates) (*types.Profile, error) {
	fields := map[string]any{}
	if updates.DisplayName != nil {
		fields["display_name"] = strings.TrimSpace(*updates.DisplayName)
	}
	if updates.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*updates.AvatarURL)
	}
	if updates.Bio != nil {
		fields["bio"] = strings.TrimSpace(*updates.Bio)
	}
	if len(fields) > 0 {
		if err := ps.profileRepo.UpdateFields(ctx, nil, profileID, fields); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	updated, err := ps.profileRepo.GetByID(ctx, nil, profileID)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	if updated == nil {
		return nil, apierr.New(http.StatusNotFound, "profile_not_found",
			fmt.Errorf("profile %s not found", profileID))
	}
	return updated, nil
}
