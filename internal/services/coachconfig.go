package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stoiccoach/stoic-coach-backend/internal/data/repos/coachcfg"
	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

// CoachConfigService is the admin surface over coach settings and
// per-mode training instructions.
type CoachConfigService interface {
	GetActiveSettings(ctx context.Context) (*types.CoachSettings, error)
	PutSettings(ctx context.Context, settings *types.CoachSettings, createdBy uuid.UUID) (*types.CoachSettings, error)
	GetTraining(ctx context.Context, mode string) (*types.TrainingMode, error)
	PutTraining(ctx context.Context, mode, instructions string) (*types.TrainingMode, error)
}

type coachConfigService struct {
	log        *logger.Logger
	configRepo coachcfg.CoachConfigRepo
}

func NewCoachConfigService(log *logger.Logger, configRepo coachcfg.CoachConfigRepo) CoachConfigService {
	serviceLog := log.With("service", "CoachConfigService")
	return &coachConfigService{log: serviceLog, configRepo: configRepo}
}

func (cs *coachConfigService) GetActiveSettings(ctx context.Context) (*types.CoachSettings, error) {
	return cs.configRepo.GetActiveSettings(ctx, nil)
}

// PutSettings inserts a fresh active row rather than mutating in place,
// so the previous configuration stays readable for audit.
func (cs *coachConfigService) PutSettings(ctx context.Context, settings *types.CoachSettings, createdBy uuid.UUID) (*types.CoachSettings, error) {
	settings.ID = uuid.Nil
	settings.IsActive = true
	settings.CreatedByProfile = &createdBy
	if err := cs.configRepo.InsertSettings(ctx, nil, settings); err != nil {
		return nil, fmt.Errorf("insert settings: %w", err)
	}
	return settings, nil
}

func (cs *coachConfigService) GetTraining(ctx context.Context, mode string) (*types.TrainingMode, error) {
	return cs.configRepo.GetLatestTraining(ctx, nil, strings.TrimSpace(mode))
}

// PutTraining updates the latest row for the mode when one exists,
// otherwise inserts the first one.
func (cs *coachConfigService) PutTraining(ctx context.Context, mode, instructions string) (*types.TrainingMode, error) {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		return nil, fmt.Errorf("mode required")
	}
	existing, err := cs.configRepo.GetLatestTraining(ctx, nil, mode)
	if err != nil {
		return nil, fmt.Errorf("load training: %w", err)
	}
	if existing != nil {
		if err := cs.configRepo.UpdateTrainingInstructions(ctx, nil, existing.ID, instructions); err != nil {
			return nil, fmt.Errorf("update training: %w", err)
		}
		existing.Instructions = instructions
		return existing, nil
	}
	created := &types.TrainingMode{Mode: mode, Instructions: instructions}
	if err := cs.configRepo.InsertTraining(ctx, nil, created); err != nil {
		return nil, fmt.Errorf("insert training: %w", err)
	}
	return created, nil
}
