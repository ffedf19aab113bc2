package logic

import (
	"context"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// MockGameStore implements GameStore with overridable functions.
type MockGameStore struct {
	InsertFunc           func(ctx context.Context, game *models.Game) (bool, error)
	PatchResultFunc      func(ctx context.Context, game *models.Game) error
	KnownGameIDsFunc     func(ctx context.Context, period models.Period) (map[string]bool, error)
	GetFunc              func(ctx context.Context, gameID string) (*models.Game, error)
	ForPeriodFunc        func(ctx context.Context, period models.Period) ([]models.Game, error)
	IncompleteFunc       func(ctx context.Context, period models.Period) ([]models.Game, error)
	CompletedForTeamFunc func(ctx context.Context, team string, upTo models.Period) ([]models.Game, error)
}

func (m *MockGameStore) Insert(ctx context.Context, game *models.Game) (bool, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, game)
	}
	return true, nil
}

func (m *MockGameStore) PatchResult(ctx context.Context, game *models.Game) error {
	if m.PatchResultFunc != nil {
		return m.PatchResultFunc(ctx, game)
	}
	return nil
}

func (m *MockGameStore) KnownGameIDs(ctx context.Context, period models.Period) (map[string]bool, error) {
	if m.KnownGameIDsFunc != nil {
		return m.KnownGameIDsFunc(ctx, period)
	}
	return map[string]bool{}, nil
}

func (m *MockGameStore) Get(ctx context.Context, gameID string) (*models.Game, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, gameID)
	}
	return nil, models.ErrNotFound
}

func (m *MockGameStore) ForPeriod(ctx context.Context, period models.Period) ([]models.Game, error) {
	if m.ForPeriodFunc != nil {
		return m.ForPeriodFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockGameStore) Incomplete(ctx context.Context, period models.Period) ([]models.Game, error) {
	if m.IncompleteFunc != nil {
		return m.IncompleteFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockGameStore) CompletedForTeam(ctx context.Context, team string, upTo models.Period) ([]models.Game, error) {
	if m.CompletedForTeamFunc != nil {
		return m.CompletedForTeamFunc(ctx, team, upTo)
	}
	return nil, nil
}

// MockPredictionStore implements PredictionStore with overridable functions.
type MockPredictionStore struct {
	InsertFunc    func(ctx context.Context, p *models.Prediction) error
	SettleFunc    func(ctx context.Context, gameID, winner string) (int64, error)
	ForGameFunc   func(ctx context.Context, gameID string) ([]models.Prediction, error)
	ForPeriodFunc func(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error)
}

func (m *MockPredictionStore) Insert(ctx context.Context, p *models.Prediction) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	return nil
}

func (m *MockPredictionStore) Settle(ctx context.Context, gameID, winner string) (int64, error) {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, gameID, winner)
	}
	return 0, nil
}

func (m *MockPredictionStore) ForGame(ctx context.Context, gameID string) ([]models.Prediction, error) {
	if m.ForGameFunc != nil {
		return m.ForGameFunc(ctx, gameID)
	}
	return nil, nil
}

func (m *MockPredictionStore) ForPeriod(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error) {
	if m.ForPeriodFunc != nil {
		return m.ForPeriodFunc(ctx, period)
	}
	return nil, nil
}

// MockProvider implements Provider with overridable functions.
type MockProvider struct {
	ListPeriodFunc func(ctx context.Context, period models.Period) ([]models.Game, error)
	FetchGameFunc  func(ctx context.Context, gameID string, period models.Period) (*models.Game, error)
}

func (m *MockProvider) ListPeriod(ctx context.Context, period models.Period) ([]models.Game, error) {
	if m.ListPeriodFunc != nil {
		return m.ListPeriodFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockProvider) FetchGame(ctx context.Context, gameID string, period models.Period) (*models.Game, error) {
	if m.FetchGameFunc != nil {
		return m.FetchGameFunc(ctx, gameID, period)
	}
	return nil, models.ErrNotFound
}

// MockStateCache records invalidations and serves a fixed state set.
type MockStateCache struct {
	States       map[string]*models.TeamState
	SetCalls     []string
	Invalidated  []string
	GetCallCount int
}

func (m *MockStateCache) Get(ctx context.Context, team string, period models.Period) *models.TeamState {
	m.GetCallCount++
	if m.States == nil {
		return nil
	}
	return m.States[team+"/"+period.String()]
}

func (m *MockStateCache) Set(ctx context.Context, state *models.TeamState) {
	m.SetCalls = append(m.SetCalls, state.Team)
}

func (m *MockStateCache) Invalidate(ctx context.Context, team string, season int) {
	m.Invalidated = append(m.Invalidated, team)
}

// MockModelMetaStore keeps metadata in a map.
type MockModelMetaStore struct {
	Rows map[string]*models.ModelInfo

	GetFunc    func(ctx context.Context, modelName string) (*models.ModelInfo, error)
	UpsertFunc func(ctx context.Context, info *models.ModelInfo) error
}

func (m *MockModelMetaStore) Get(ctx context.Context, modelName string) (*models.ModelInfo, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, modelName)
	}
	if info, ok := m.Rows[modelName]; ok {
		copied := *info
		return &copied, nil
	}
	return nil, nil
}

func (m *MockModelMetaStore) Upsert(ctx context.Context, info *models.ModelInfo) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, info)
	}
	if m.Rows == nil {
		m.Rows = make(map[string]*models.ModelInfo)
	}
	copied := *info
	m.Rows[info.ModelName] = &copied
	return nil
}

func (m *MockModelMetaStore) All(ctx context.Context) ([]models.ModelInfo, error) {
	var out []models.ModelInfo
	for _, info := range m.Rows {
		out = append(out, *info)
	}
	return out, nil
}

// MockTrainingLog appends sessions to a slice.
type MockTrainingLog struct {
	Sessions   []models.TrainingSession
	AppendFunc func(ctx context.Context, session *models.TrainingSession) error
}

func (m *MockTrainingLog) Append(ctx context.Context, session *models.TrainingSession) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, session)
	}
	m.Sessions = append(m.Sessions, *session)
	return nil
}

func (m *MockTrainingLog) History(ctx context.Context, modelName string) ([]models.TrainingSession, error) {
	var out []models.TrainingSession
	for _, s := range m.Sessions {
		if s.ModelName == modelName {
			out = append(out, s)
		}
	}
	return out, nil
}

// MockFeatureService returns a fixed vector.
type MockFeatureService struct {
	AssembleFunc func(ctx context.Context, game *models.Game) (*models.FeatureVector, error)
}

func (m *MockFeatureService) Assemble(ctx context.Context, game *models.Game) (*models.FeatureVector, error) {
	if m.AssembleFunc != nil {
		return m.AssembleFunc(ctx, game)
	}
	return &models.FeatureVector{}, nil
}
