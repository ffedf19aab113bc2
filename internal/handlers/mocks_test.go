package handlers

import (
	"context"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// MockSyncService implements logic.SyncService.
type MockSyncService struct {
	ReconcileFunc func(ctx context.Context, period models.Period) (*models.SyncResult, error)
}

func (m *MockSyncService) Reconcile(ctx context.Context, period models.Period) (*models.SyncResult, error) {
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx, period)
	}
	return &models.SyncResult{Period: period}, nil
}

// MockTeamStateService implements logic.TeamStateService.
type MockTeamStateService struct {
	StateAtFunc func(ctx context.Context, team string, period models.Period) (*models.TeamState, error)
}

func (m *MockTeamStateService) StateAt(ctx context.Context, team string, period models.Period) (*models.TeamState, error) {
	if m.StateAtFunc != nil {
		return m.StateAtFunc(ctx, team, period)
	}
	return &models.TeamState{Team: team, Season: period.Season, Week: period.Week}, nil
}

// MockPredictionService implements logic.PredictionService.
type MockPredictionService struct {
	PredictGameFunc          func(ctx context.Context, gameID string) (*models.Prediction, error)
	PredictPeriodFunc        func(ctx context.Context, period models.Period) ([]models.Prediction, error)
	PredictionsForPeriodFunc func(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error)
	PredictionsForGameFunc   func(ctx context.Context, gameID string) ([]models.Prediction, error)
	SettleGameFunc           func(ctx context.Context, gameID string) error
}

func (m *MockPredictionService) PredictGame(ctx context.Context, gameID string) (*models.Prediction, error) {
	if m.PredictGameFunc != nil {
		return m.PredictGameFunc(ctx, gameID)
	}
	return nil, models.ErrNotFound
}

func (m *MockPredictionService) PredictPeriod(ctx context.Context, period models.Period) ([]models.Prediction, error) {
	if m.PredictPeriodFunc != nil {
		return m.PredictPeriodFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockPredictionService) PredictionsForPeriod(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error) {
	if m.PredictionsForPeriodFunc != nil {
		return m.PredictionsForPeriodFunc(ctx, period)
	}
	return nil, nil
}

func (m *MockPredictionService) PredictionsForGame(ctx context.Context, gameID string) ([]models.Prediction, error) {
	if m.PredictionsForGameFunc != nil {
		return m.PredictionsForGameFunc(ctx, gameID)
	}
	return nil, models.ErrNotFound
}

func (m *MockPredictionService) SettleGame(ctx context.Context, gameID string) error {
	if m.SettleGameFunc != nil {
		return m.SettleGameFunc(ctx, gameID)
	}
	return nil
}

// MockLifecycleService implements logic.LifecycleService.
type MockLifecycleService struct {
	RecordFunc   func(ctx context.Context, session *models.TrainingSession) (*models.ModelInfo, error)
	HistoryFunc  func(ctx context.Context, modelName string) ([]models.TrainingSession, error)
	OverviewFunc func(ctx context.Context) ([]models.ModelInfo, error)
}

func (m *MockLifecycleService) RecordTrainingSession(ctx context.Context, session *models.TrainingSession) (*models.ModelInfo, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, session)
	}
	return &models.ModelInfo{ModelName: session.ModelName, TrainingCount: 1}, nil
}

func (m *MockLifecycleService) History(ctx context.Context, modelName string) ([]models.TrainingSession, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, modelName)
	}
	return nil, nil
}

func (m *MockLifecycleService) Overview(ctx context.Context) ([]models.ModelInfo, error) {
	if m.OverviewFunc != nil {
		return m.OverviewFunc(ctx)
	}
	return nil, nil
}
