package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error)
	GetByID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Profile, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, fields map[string]any) error
	UpdateMemoryStore(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, store datatypes.JSON) error
	SetOnboardingStatus(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, status string) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(profile).Error
}

// GetByUserID returns nil, nil when the identity has no profile yet.
func (pr *profileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Profile
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *profileRepo) GetByID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Profile
	err := transaction.WithContext(ctx).
		Where("id = ?", profileID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *profileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("id = ?", profileID).
		Updates(fields).Error
}

func (pr *profileRepo) UpdateMemoryStore(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, store datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("id = ?", profileID).
		Update("memory_store", store).Error
}

func (pr *profileRepo) SetOnboardingStatus(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("id = ?", profileID).
		Update("onboarding_status", status).Error
}
