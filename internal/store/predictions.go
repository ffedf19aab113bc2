package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// PredictionStore persists per-model and ensemble prediction rows, at most
// one per (game id, model name).
type PredictionStore struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewPredictionStore(pg PgPool, logger *zap.Logger) *PredictionStore {
	return &PredictionStore{pg: pg, logger: logger.Sugar()}
}

// Insert stores a prediction row. A second insert for the same
// (game, model) pair is ignored, keeping the first pick authoritative.
func (s *PredictionStore) Insert(ctx context.Context, p *models.Prediction) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO predictions (
			game_id, model_name, predicted_winner, win_probability, confidence, predicted_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game_id, model_name) DO NOTHING
	`, p.GameID, p.ModelName, p.PredictedWinner, p.WinProbability, p.Confidence, p.PredictedAt)
	if err != nil {
		return fmt.Errorf("insert prediction %s/%s: %w", p.GameID, p.ModelName, err)
	}
	return nil
}

// Settle fills in the actual winner and derived correctness flag for every
// prediction on a game that has not been settled yet. The guard makes the
// sweep idempotent and safe alongside concurrent predicts for other games.
func (s *PredictionStore) Settle(ctx context.Context, gameID, winner string) (int64, error) {
	tag, err := s.pg.Exec(ctx, `
		UPDATE predictions
		SET actual_winner = $2, correct = (predicted_winner = $2)
		WHERE game_id = $1 AND actual_winner IS NULL
	`, gameID, winner)
	if err != nil {
		return 0, fmt.Errorf("settle predictions for game %s: %w", gameID, err)
	}
	return tag.RowsAffected(), nil
}

// ForGame returns every prediction row for a game, ensemble included.
func (s *PredictionStore) ForGame(ctx context.Context, gameID string) ([]models.Prediction, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT game_id, model_name, predicted_winner, win_probability, confidence,
		       predicted_at, actual_winner, correct
		FROM predictions
		WHERE game_id = $1
		ORDER BY model_name ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("predictions for game %s: %w", gameID, err)
	}
	defer rows.Close()

	var preds []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.GameID, &p.ModelName, &p.PredictedWinner, &p.WinProbability,
			&p.Confidence, &p.PredictedAt, &p.ActualWinner, &p.Correct); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		preds = append(preds, p)
	}
	return preds, rows.Err()
}

// ForPeriod returns the week's predictions joined with their games,
// ordered by kickoff with the ensemble row alongside each game's per-model
// rows.
func (s *PredictionStore) ForPeriod(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT p.game_id, p.model_name, p.predicted_winner, p.win_probability, p.confidence,
		       p.predicted_at, p.actual_winner, p.correct,
		       g.season, g.week, g.game_date, g.home_team, g.away_team,
		       g.home_score, g.away_score, g.home_spread, g.total_points, g.weather_conditions
		FROM predictions p
		JOIN games g ON g.game_id = p.game_id
		WHERE g.season = $1 AND g.week = $2
		ORDER BY g.game_date ASC, g.game_id ASC, p.model_name ASC
	`, period.Season, period.Week)
	if err != nil {
		return nil, fmt.Errorf("predictions for %s: %w", period, err)
	}
	defer rows.Close()

	var preds []models.PeriodPrediction
	for rows.Next() {
		var p models.PeriodPrediction
		if err := rows.Scan(&p.GameID, &p.ModelName, &p.PredictedWinner, &p.WinProbability,
			&p.Confidence, &p.PredictedAt, &p.ActualWinner, &p.Correct,
			&p.Season, &p.Week, &p.GameDate, &p.HomeTeam, &p.AwayTeam,
			&p.HomeScore, &p.AwayScore, &p.HomeSpread, &p.TotalPoints, &p.WeatherConditions); err != nil {
			return nil, fmt.Errorf("scan period prediction: %w", err)
		}
		preds = append(preds, p)
	}
	return preds, rows.Err()
}
