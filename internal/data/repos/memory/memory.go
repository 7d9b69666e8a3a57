package memory

import (
	"context"

	"github.com/google/uuid"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// MemoryRepo covers the row-backed fact categories: boundaries, stuck
// points, goals, relationships and relationship details.
type MemoryRepo interface {
	ListBoundaries(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Boundary, error)
	InsertBoundaries(ctx context.Context, tx *gorm.DB, boundaries []*types.Boundary) error

	ListStuckPoints(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.StuckPoint, error)
	InsertStuckPoints(ctx context.Context, tx *gorm.DB, points []*types.StuckPoint) error

	ListGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Goal, error)
	RecentGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Goal, error)
	InsertGoals(ctx context.Context, tx *gorm.DB, goals []*types.Goal) error

	ListRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Relationship, error)
	RecentRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Relationship, error)
	InsertRelationship(ctx context.Context, tx *gorm.DB, relationship *types.Relationship) error
	InsertRelationshipDetail(ctx context.Context, tx *gorm.DB, detail *types.RelationshipDetail) error
	ListRelationshipDetails(ctx context.Context, tx *gorm.DB, relationshipIDs []uuid.UUID) ([]*types.RelationshipDetail, error)
}

type memoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemoryRepo(db *gorm.DB, baseLog *logger.Logger) MemoryRepo {
	repoLog := baseLog.With("repo", "MemoryRepo")
	return &memoryRepo{db: db, log: repoLog}
}

func (mr *memoryRepo) ListBoundaries(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Boundary, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Boundary
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memoryRepo) InsertBoundaries(ctx context.Context, tx *gorm.DB, boundaries []*types.Boundary) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(boundaries) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&boundaries).Error
}

func (mr *memoryRepo) ListStuckPoints(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.StuckPoint, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.StuckPoint
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memoryRepo) InsertStuckPoints(ctx context.Context, tx *gorm.DB, points []*types.StuckPoint) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(points) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&points).Error
}

func (mr *memoryRepo) ListGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memoryRepo) RecentGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Goal, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Goal
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memoryRepo) InsertGoals(ctx context.Context, tx *gorm.DB, goals []*types.Goal) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(goals) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&goals).Error
}

func (mr *memoryRepo) ListRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Relationship
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memoryRepo) RecentRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Relationship
	if err := transaction.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memoryRepo) InsertRelationship(ctx context.Context, tx *gorm.DB, relationship *types.Relationship) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(relationship).Error
}

func (mr *memoryRepo) InsertRelationshipDetail(ctx context.Context, tx *gorm.DB, detail *types.RelationshipDetail) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(detail).Error
}

func (mr *memoryRepo) ListRelationshipDetails(ctx context.Context, tx *gorm.DB, relationshipIDs []uuid.UUID) ([]*types.RelationshipDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.RelationshipDetail
	if len(relationshipIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("relationship_id IN ?", relationshipIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
