package coachcfg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// CoachConfigRepo reads and writes the shared coach configuration tables.
// Reads are maybe-single: a missing row comes back nil, nil so callers can
// substitute defaults.
type CoachConfigRepo interface {
	GetActiveSettings(ctx context.Context, tx *gorm.DB) (*types.CoachSettings, error)
	InsertSettings(ctx context.Context, tx *gorm.DB, settings *types.CoachSettings) error
	GetLatestTraining(ctx context.Context, tx *gorm.DB, mode string) (*types.TrainingMode, error)
	InsertTraining(ctx context.Context, tx *gorm.DB, training *types.TrainingMode) error
	UpdateTrainingInstructions(ctx context.Context, tx *gorm.DB, trainingID uuid.UUID, instructions string) error
}

type coachConfigRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachConfigRepo(db *gorm.DB, baseLog *logger.Logger) CoachConfigRepo {
	repoLog := baseLog.With("repo", "CoachConfigRepo")
	return &coachConfigRepo{db: db, log: repoLog}
}

// GetActiveSettings returns the most recently updated active row. If several
// rows are marked active the newest wins.
func (cr *coachConfigRepo) GetActiveSettings(ctx context.Context, tx *gorm.DB) (*types.CoachSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.CoachSettings
	err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *coachConfigRepo) InsertSettings(ctx context.Context, tx *gorm.DB, settings *types.CoachSettings) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(settings).Error
}

func (cr *coachConfigRepo) GetLatestTraining(ctx context.Context, tx *gorm.DB, mode string) (*types.TrainingMode, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.TrainingMode
	err := transaction.WithContext(ctx).
		Where("mode = ?", mode).
		Order("updated_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *coachConfigRepo) InsertTraining(ctx context.Context, tx *gorm.DB, training *types.TrainingMode) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(training).Error
}

func (cr *coachConfigRepo) UpdateTrainingInstructions(ctx context.Context, tx *gorm.DB, trainingID uuid.UUID, instructions string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.TrainingMode{}).
		Where("id = ?", trainingID).
		Update("instructions", instructions).Error
}
