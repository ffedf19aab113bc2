package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// TrainingLog is the append-only record of every training session, kept in
// ClickHouse so history queries stay cheap as the log grows.
type TrainingLog struct {
	ch     driver.Conn
	logger *zap.SugaredLogger
}

func NewTrainingLog(ch driver.Conn, logger *zap.Logger) *TrainingLog {
	return &TrainingLog{
		ch:     ch,
		logger: logger.Sugar(),
	}
}

// EnsureTrainingLog creates the training log table if it does not exist.
func EnsureTrainingLog(ctx context.Context, ch driver.Conn) error {
	err := ch.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS training_sessions (
			id               String,
			model_name       LowCardinality(String),
			trained_at       DateTime64(3),
			duration_seconds Float64,
			sample_count     UInt32,
			accuracy         Float64,
			precision_score  Float64,
			recall           Float64,
			f1               Float64,
			auc              Float64,
			hyperparameters  String
		) ENGINE = MergeTree()
		ORDER BY (model_name, trained_at)
	`)
	if err != nil {
		return fmt.Errorf("ensure training_sessions table: %w", err)
	}
	return nil
}

// Append writes one training session row. Rows are never updated or deleted.
func (l *TrainingLog) Append(ctx context.Context, session *models.TrainingSession) error {
	params, err := json.Marshal(session.Hyperparameters)
	if err != nil {
		return fmt.Errorf("marshal hyperparameters: %w", err)
	}

	batch, err := l.ch.PrepareBatch(ctx, `
		INSERT INTO training_sessions (
			id, model_name, trained_at, duration_seconds, sample_count,
			accuracy, precision_score, recall, f1, auc, hyperparameters
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare training insert: %w", err)
	}

	if err := batch.Append(
		session.ID,
		session.ModelName,
		session.TrainedAt,
		session.DurationSeconds,
		uint32(session.SampleCount),
		session.Accuracy,
		session.Precision,
		session.Recall,
		session.F1,
		session.AUC,
		string(params),
	); err != nil {
		return fmt.Errorf("append training row: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send training batch: %w", err)
	}

	l.logger.Infow("Recorded training session",
		"model", session.ModelName,
		"accuracy", session.Accuracy,
		"samples", session.SampleCount)
	return nil
}

// History returns every session for a model in chronological order.
func (l *TrainingLog) History(ctx context.Context, modelName string) ([]models.TrainingSession, error) {
	rows, err := l.ch.Query(ctx, `
		SELECT id, model_name, trained_at, duration_seconds, sample_count,
		       accuracy, precision_score, recall, f1, auc, hyperparameters
		FROM training_sessions
		WHERE model_name = ?
		ORDER BY trained_at ASC
	`, modelName)
	if err != nil {
		return nil, fmt.Errorf("training history %s: %w", modelName, err)
	}
	defer rows.Close()

	var sessions []models.TrainingSession
	for rows.Next() {
		var (
			s           models.TrainingSession
			sampleCount uint32
			rawParams   string
		)
		if err := rows.Scan(&s.ID, &s.ModelName, &s.TrainedAt, &s.DurationSeconds,
			&sampleCount, &s.Accuracy, &s.Precision, &s.Recall, &s.F1, &s.AUC,
			&rawParams); err != nil {
			return nil, fmt.Errorf("scan training session: %w", err)
		}
		s.SampleCount = int(sampleCount)
		if rawParams != "" {
			if err := json.Unmarshal([]byte(rawParams), &s.Hyperparameters); err != nil {
				l.logger.Warnw("Skipping malformed hyperparameters", "session", s.ID, "error", err)
			}
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
