package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OnboardingRepo stores the two one-to-one questionnaire records. Upserts
// key on profile_id.
type OnboardingRepo interface {
	GetAlwaysNever(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.AlwaysNever, error)
	UpsertAlwaysNever(ctx context.Context, tx *gorm.DB, record *types.AlwaysNever) error
	GetAgreeDisagree(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.AgreeDisagree, error)
	UpsertAgreeDisagree(ctx context.Context, tx *gorm.DB, record *types.AgreeDisagree) error
}

type onboardingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOnboardingRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingRepo {
	repoLog := baseLog.With("repo", "OnboardingRepo")
	return &onboardingRepo{db: db, log: repoLog}
}

func (or *onboardingRepo) GetAlwaysNever(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.AlwaysNever, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var result types.AlwaysNever
	err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *onboardingRepo) UpsertAlwaysNever(ctx context.Context, tx *gorm.DB, record *types.AlwaysNever) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"making_plans_prefer_schedule",
				"thrill_seeking_frequency",
				"analyze_vs_distract_when_stressed",
				"understand_upset_friend_immediately",
				"rely_logic_over_gut",
				"follow_through_long_term_goals",
				"anxious_talk_it_out_vs_internal",
				"updated_at",
			}),
		}).
		Create(record).Error
}

func (or *onboardingRepo) GetAgreeDisagree(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.AgreeDisagree, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var result types.AgreeDisagree
	err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (or *onboardingRepo) UpsertAgreeDisagree(ctx context.Context, tx *gorm.DB, record *types.AgreeDisagree) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"energized_by_many_people",
				"own_emotions_easier_than_others",
				"highly_organized_person",
				"notice_subtle_mood_changes",
				"comfortable_challenging_norms",
				"easy_to_admit_wrong",
				"prefer_exploring_new_ideas",
				"fairness_honesty_important",
				"updated_at",
			}),
		}).
		Create(record).Error
}
