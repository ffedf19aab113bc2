package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// ModelMetaStore persists the per-model lifecycle metadata row.
type ModelMetaStore struct {
	pg PgPool
}

func NewModelMetaStore(pg PgPool) *ModelMetaStore {
	return &ModelMetaStore{pg: pg}
}

// Get returns the metadata row for a model, or nil when the model has no
// recorded training yet.
func (s *ModelMetaStore) Get(ctx context.Context, modelName string) (*models.ModelInfo, error) {
	var info models.ModelInfo
	err := s.pg.QueryRow(ctx, `
		SELECT model_name, training_count, best_accuracy, current_accuracy, version,
		       COALESCE(last_trained_at, 'epoch'::timestamptz)
		FROM model_metadata
		WHERE model_name = $1
	`, modelName).Scan(&info.ModelName, &info.TrainingCount, &info.BestAccuracy,
		&info.CurrentAccuracy, &info.Version, &info.LastTrainedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("model metadata %s: %w", modelName, err)
	}
	return &info, nil
}

// Upsert writes the full metadata row for a model.
func (s *ModelMetaStore) Upsert(ctx context.Context, info *models.ModelInfo) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO model_metadata (
			model_name, training_count, best_accuracy, current_accuracy, version, last_trained_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (model_name) DO UPDATE SET
			training_count   = EXCLUDED.training_count,
			best_accuracy    = EXCLUDED.best_accuracy,
			current_accuracy = EXCLUDED.current_accuracy,
			version          = EXCLUDED.version,
			last_trained_at  = EXCLUDED.last_trained_at
	`, info.ModelName, info.TrainingCount, info.BestAccuracy,
		info.CurrentAccuracy, info.Version, info.LastTrainedAt)
	if err != nil {
		return fmt.Errorf("upsert model metadata %s: %w", info.ModelName, err)
	}
	return nil
}

// All returns every model's metadata row, ordered by name.
func (s *ModelMetaStore) All(ctx context.Context) ([]models.ModelInfo, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT model_name, training_count, best_accuracy, current_accuracy, version,
		       COALESCE(last_trained_at, 'epoch'::timestamptz)
		FROM model_metadata
		ORDER BY model_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("model metadata overview: %w", err)
	}
	defer rows.Close()

	var infos []models.ModelInfo
	for rows.Next() {
		var info models.ModelInfo
		if err := rows.Scan(&info.ModelName, &info.TrainingCount, &info.BestAccuracy,
			&info.CurrentAccuracy, &info.Version, &info.LastTrainedAt); err != nil {
			return nil, fmt.Errorf("scan model metadata: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
