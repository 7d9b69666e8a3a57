package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/ctxutil"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
	"github.com/stoiccoach/stoic-coach-backend/internal/services"

	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// authAs stands in for the auth middleware in route tests.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func completionWithText(t *testing.T, text string) *openrouter.ChatCompletion {
	t.Helper()
	raw := fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, text)
	var out openrouter.ChatCompletion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("build completion: %v", err)
	}
	out.Raw = json.RawMessage(raw)
	return &out
}

type fakeProfileService struct {
	profile *types.Profile
	err     error
}

func (f *fakeProfileService) EnsureForUser(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) Update(ctx context.Context, profileID uuid.UUID, updates services.ProfileUpdates) (*types.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if updates.DisplayName != nil {
		f.profile.DisplayName = *updates.DisplayName
	}
	if updates.Bio != nil {
		f.profile.Bio = *updates.Bio
	}
	return f.profile, nil
}

func testProfile(admin bool) *types.Profile {
	return &types.Profile{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		DisplayName:      "Marcus",
		Admin:            admin,
		MemoryStore:      datatypes.JSON([]byte(`{}`)),
		OnboardingStatus: types.OnboardingStatusOnboarding,
	}
}

type fakeAIClient struct {
	completions []*openrouter.ChatCompletion
	stream      *openrouter.ChatStream
	err         error
	calls       int
}

func (f *fakeAIClient) Complete(ctx context.Context, model string, messages []openrouter.ChatMessage, params openrouter.ChatParams) (*openrouter.ChatCompletion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.completions) == 0 {
		return nil, fmt.Errorf("no queued completion")
	}
	out := f.completions[0]
	f.completions = f.completions[1:]
	return out, nil
}

func (f *fakeAIClient) Stream(ctx context.Context, model string, messages []openrouter.ChatMessage, params openrouter.ChatParams) (*openrouter.ChatStream, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func (f *fakeAIClient) ListModels(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeAIClient) DefaultModel() string { return "test-model" }

type fakeConfigRepo struct{}

func (f *fakeConfigRepo) GetActiveSettings(ctx context.Context, tx *gorm.DB) (*types.CoachSettings, error) {
	return nil, nil
}

func (f *fakeConfigRepo) InsertSettings(ctx context.Context, tx *gorm.DB, settings *types.CoachSettings) error {
	return nil
}

func (f *fakeConfigRepo) GetLatestTraining(ctx context.Context, tx *gorm.DB, mode string) (*types.TrainingMode, error) {
	return nil, nil
}

func (f *fakeConfigRepo) InsertTraining(ctx context.Context, tx *gorm.DB, training *types.TrainingMode) error {
	return nil
}

func (f *fakeConfigRepo) UpdateTrainingInstructions(ctx context.Context, tx *gorm.DB, trainingID uuid.UUID, instructions string) error {
	return nil
}

type fakeMemoryRepo struct{}

func (f *fakeMemoryRepo) ListBoundaries(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Boundary, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) InsertBoundaries(ctx context.Context, tx *gorm.DB, boundaries []*types.Boundary) error {
	return nil
}

func (f *fakeMemoryRepo) ListStuckPoints(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.StuckPoint, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) InsertStuckPoints(ctx context.Context, tx *gorm.DB, points []*types.StuckPoint) error {
	return nil
}

func (f *fakeMemoryRepo) ListGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Goal, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) RecentGoals(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Goal, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) InsertGoals(ctx context.Context, tx *gorm.DB, goals []*types.Goal) error {
	return nil
}

func (f *fakeMemoryRepo) ListRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Relationship, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) RecentRelationships(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, limit int) ([]*types.Relationship, error) {
	return nil, nil
}

func (f *fakeMemoryRepo) InsertRelationship(ctx context.Context, tx *gorm.DB, relationship *types.Relationship) error {
	return nil
}

func (f *fakeMemoryRepo) InsertRelationshipDetail(ctx context.Context, tx *gorm.DB, detail *types.RelationshipDetail) error {
	return nil
}

func (f *fakeMemoryRepo) ListRelationshipDetails(ctx context.Context, tx *gorm.DB, relationshipIDs []uuid.UUID) ([]*types.RelationshipDetail, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	statuses map[uuid.UUID]string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{statuses: map[uuid.UUID]string{}}
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
	return nil
}

func (f *fakeProfileRepo) SetOnboardingStatus(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, status string) error {
	f.statuses[profileID] = status
	return nil
}

type fakeOnboardingRepo struct {
	alwaysNever   *types.AlwaysNever
	agreeDisagree *types.AgreeDisagree
}

func (f *fakeOnboardingRepo) GetAlwaysNever(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.AlwaysNever, error) {
	return f.alwaysNever, nil
}

func (f *fakeOnboardingRepo) UpsertAlwaysNever(ctx context.Context, tx *gorm.DB, record *types.AlwaysNever) error {
	f.alwaysNever = record
	return nil
}

func (f *fakeOnboardingRepo) GetAgreeDisagree(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.AgreeDisagree, error) {
	return f.agreeDisagree, nil
}

func (f *fakeOnboardingRepo) UpsertAgreeDisagree(ctx context.Context, tx *gorm.DB, record *types.AgreeDisagree) error {
	f.agreeDisagree = record
	return nil
}

type fakeCoachConfigService struct {
	settings *types.CoachSettings
	training *types.TrainingMode
}

func (f *fakeCoachConfigService) GetActiveSettings(ctx context.Context) (*types.CoachSettings, error) {
	return f.settings, nil
}

func (f *fakeCoachConfigService) PutSettings(ctx context.Context, settings *types.CoachSettings, createdBy uuid.UUID) (*types.CoachSettings, error) {
	settings.IsActive = true
	settings.CreatedByProfile = &createdBy
	f.settings = settings
	return settings, nil
}

func (f *fakeCoachConfigService) GetTraining(ctx context.Context, mode string) (*types.TrainingMode, error) {
	return f.training, nil
}

func (f *fakeCoachConfigService) PutTraining(ctx context.Context, mode, instructions string) (*types.TrainingMode, error) {
	f.training = &types.TrainingMode{Mode: mode, Instructions: instructions}
	return f.training, nil
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
