package steps

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
)

// In-memory fakes for the repo interfaces and the completion client, used
// by the step tests that do not need Postgres.

type fakeAI struct {
	replies []string
	calls   [][]openrouter.ChatMessage
	params  []openrouter.ChatParams
	err     error
}

func (f *fakeAI) Complete(ctx context.Context, model string, messages []openrouter.ChatMessage, params openrouter.ChatParams) (*openrouter.ChatCompletion, error) {
	f.calls = append(f.calls, messages)
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	reply := ""
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	raw, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": reply}},
		},
	})
	if err != nil {
		return nil, err
	}
	out := &openrouter.ChatCompletion{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	out.Raw = raw
	return out, nil
}

func (f *fakeAI) Stream(ctx context.Context, model string, messages []openrouter.ChatMessage, params openrouter.ChatParams) (*openrouter.ChatStream, error) {
	return nil, f.err
}

func (f *fakeAI) ListModels(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakeAI) DefaultModel() string                             { return "fake/model" }

type fakeConfigRepo struct {
	settings *types.CoachSettings
	training map[string]*types.TrainingMode
	err      error
}

func (f *fakeConfigRepo) GetActiveSettings(ctx context.Context, tx *gorm.DB) (*types.CoachSettings, error) {
	return f.settings, f.err
}
func (f *fakeConfigRepo) InsertSettings(ctx context.Context, tx *gorm.DB, settings *types.CoachSettings) error {
	return nil
}
func (f *fakeConfigRepo) GetLatestTraining(ctx context.Context, tx *gorm.DB, mode string) (*types.TrainingMode, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.training[mode], nil
}
func (f *fakeConfigRepo) InsertTraining(ctx context.Context, tx *gorm.DB, training *types.TrainingMode) error {
	return nil
}
func (f *fakeConfigRepo) UpdateTrainingInstructions(ctx context.Context, tx *gorm.DB, trainingID uuid.UUID, instructions string) error {
	return nil
}

type fakeMemoryRepo struct {
	boundaries    []*types.Boundary
	stuckPoints   []*types.StuckPoint
	goals         []*types.Goal
	relationships []*types.Relationship
	details       []*types.RelationshipDetail
}

func (f *fakeMemoryRepo) ListBoundaries(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Boundary, error) {
	return f.boundaries, nil
}
func (f *fakeMemoryRepo) InsertBoundaries(ctx context.Context, tx *gorm.DB, boundaries []*types.Boundary) error {
	f.boundaries = append(f.boundaries, boundaries...)
	return nil
}
func (f *fakeMemoryRepo) ListStuckPoints(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.StuckPoint, error) {
	return f.stuckPoints, nil
}
func (f *fakeMemoryRepo) InsertStuckPoints(ctx context.Context, tx *gorm.DB, points []*types.StuckPoint) error {
	f.stuckPoints = append(f.stuckPoints, points...)
	return nil
}
func (f *fakeMemoryRepo) ListGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Goal, error) {
	return f.goals, nil
}
func (f *fakeMemoryRepo) RecentGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Goal, error) {
	if len(f.goals) > limit {
		return f.goals[:limit], nil
	}
	return f.goals, nil
}
func (f *fakeMemoryRepo) InsertGoals(ctx context.Context, tx *gorm.DB, goals []*types.Goal) error {
	f.goals = append(f.goals, goals...)
	return nil
}
func (f *fakeMemoryRepo) ListRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Relationship, error) {
	return f.relationships, nil
}
func (f *fakeMemoryRepo) RecentRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Relationship, error) {
	if len(f.relationships) > limit {
		return f.relationships[:limit], nil
	}
	return f.relationships, nil
}
func (f *fakeMemoryRepo) InsertRelationship(ctx context.Context, tx *gorm.DB, relationship *types.Relationship) error {
	if relationship.ID == uuid.Nil {
		relationship.ID = uuid.New()
	}
	f.relationships = append(f.relationships, relationship)
	return nil
}
func (f *fakeMemoryRepo) InsertRelationshipDetail(ctx context.Context, tx *gorm.DB, detail *types.RelationshipDetail) error {
	f.details = append(f.details, detail)
	return nil
}
func (f *fakeMemoryRepo) ListRelationshipDetails(ctx context.Context, tx *gorm.DB, relationshipIDs []uuid.UUID) ([]*types.RelationshipDetail, error) {
	return f.details, nil
}

type fakeProfileRepo struct {
	stores map[uuid.UUID]datatypes.JSON
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{stores: map[uuid.UUID]datatypes.JSON{}}
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) error {
	return nil
}
func (f *fakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, fields map[string]any) error {
	return nil
}
func (f *fakeProfileRepo) UpdateMemoryStore(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, store datatypes.JSON) error {
	f.stores[profileID] = store
	return nil
}
func (f *fakeProfileRepo) SetOnboardingStatus(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, status string) error {
	return nil
}

func systemPromptOf(messages []openrouter.ChatMessage) string {
	for _, m := range messages {
		if m.Role == "system" {
			return m.Content
		}
	}
	return ""
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
