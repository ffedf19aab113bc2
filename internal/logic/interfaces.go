package logic

import (
	"context"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// GameStore defines the persistence operations the services need for games.
type GameStore interface {
	Insert(ctx context.Context, game *models.Game) (bool, error)
	PatchResult(ctx context.Context, game *models.Game) error
	KnownGameIDs(ctx context.Context, period models.Period) (map[string]bool, error)
	Get(ctx context.Context, gameID string) (*models.Game, error)
	ForPeriod(ctx context.Context, period models.Period) ([]models.Game, error)
	Incomplete(ctx context.Context, period models.Period) ([]models.Game, error)
	CompletedForTeam(ctx context.Context, team string, upTo models.Period) ([]models.Game, error)
}

// PredictionStore defines the persistence operations for predictions.
type PredictionStore interface {
	Insert(ctx context.Context, p *models.Prediction) error
	Settle(ctx context.Context, gameID, winner string) (int64, error)
	ForGame(ctx context.Context, gameID string) ([]models.Prediction, error)
	ForPeriod(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error)
}

// ModelMetaStore defines the persistence operations for model metadata.
type ModelMetaStore interface {
	Get(ctx context.Context, modelName string) (*models.ModelInfo, error)
	Upsert(ctx context.Context, info *models.ModelInfo) error
	All(ctx context.Context) ([]models.ModelInfo, error)
}

// TrainingLog defines the append-only training history.
type TrainingLog interface {
	Append(ctx context.Context, session *models.TrainingSession) error
	History(ctx context.Context, modelName string) ([]models.TrainingSession, error)
}

// StateCache memoizes computed team states.
type StateCache interface {
	Get(ctx context.Context, team string, period models.Period) *models.TeamState
	Set(ctx context.Context, state *models.TeamState)
	Invalidate(ctx context.Context, team string, season int)
}

// Provider fetches the upstream view of games.
type Provider interface {
	ListPeriod(ctx context.Context, period models.Period) ([]models.Game, error)
	FetchGame(ctx context.Context, gameID string, period models.Period) (*models.Game, error)
}

// SyncService reconciles the local record with the upstream feed.
type SyncService interface {
	Reconcile(ctx context.Context, period models.Period) (*models.SyncResult, error)
}

// TeamStateService computes a team's cumulative state at a period.
type TeamStateService interface {
	StateAt(ctx context.Context, team string, period models.Period) (*models.TeamState, error)
}

// FeatureService assembles the model input for a game.
type FeatureService interface {
	Assemble(ctx context.Context, game *models.Game) (*models.FeatureVector, error)
}

// PredictionService runs the ensemble and settles outcomes.
type PredictionService interface {
	PredictGame(ctx context.Context, gameID string) (*models.Prediction, error)
	PredictPeriod(ctx context.Context, period models.Period) ([]models.Prediction, error)
	PredictionsForPeriod(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error)
	PredictionsForGame(ctx context.Context, gameID string) ([]models.Prediction, error)
	SettleGame(ctx context.Context, gameID string) error
}

// LifecycleService tracks model training history and accuracy metadata.
type LifecycleService interface {
	RecordTrainingSession(ctx context.Context, session *models.TrainingSession) (*models.ModelInfo, error)
	History(ctx context.Context, modelName string) ([]models.TrainingSession, error)
	Overview(ctx context.Context) ([]models.ModelInfo, error)
}
