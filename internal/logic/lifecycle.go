package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// Versioner tags a model with a new version after training.
type Versioner interface {
	SetVersion(name, version string) error
}

// LifecycleSvc records training sessions and maintains per-model accuracy
// metadata.
type LifecycleSvc struct {
	meta      ModelMetaStore
	log       TrainingLog
	versioner Versioner
	logger    *zap.SugaredLogger
}

func NewLifecycleService(meta ModelMetaStore, log TrainingLog, versioner Versioner, logger *zap.Logger) *LifecycleSvc {
	return &LifecycleSvc{
		meta:      meta,
		log:       log,
		versioner: versioner,
		logger:    logger.Sugar(),
	}
}

// RecordTrainingSession appends the session to the training log and updates
// the model's metadata: training count increments, current accuracy tracks
// the new session, and best accuracy only ever goes up.
func (s *LifecycleSvc) RecordTrainingSession(ctx context.Context, session *models.TrainingSession) (*models.ModelInfo, error) {
	if session.ModelName == "" {
		return nil, fmt.Errorf("record training session: model name is required")
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.TrainedAt.IsZero() {
		session.TrainedAt = time.Now().UTC()
	}

	if err := s.log.Append(ctx, session); err != nil {
		return nil, fmt.Errorf("record training session %s: %w", session.ModelName, err)
	}

	info, err := s.meta.Get(ctx, session.ModelName)
	if err != nil {
		return nil, fmt.Errorf("record training session %s: %w", session.ModelName, err)
	}
	if info == nil {
		info = &models.ModelInfo{ModelName: session.ModelName}
	}

	info.TrainingCount++
	info.CurrentAccuracy = session.Accuracy
	if session.Accuracy > info.BestAccuracy {
		info.BestAccuracy = session.Accuracy
	}
	info.Version = fmt.Sprintf("v%d-%s", info.TrainingCount, session.TrainedAt.Format("20060102"))
	info.LastTrainedAt = session.TrainedAt

	if err := s.meta.Upsert(ctx, info); err != nil {
		return nil, fmt.Errorf("record training session %s: %w", session.ModelName, err)
	}

	if s.versioner != nil {
		if err := s.versioner.SetVersion(session.ModelName, info.Version); err != nil {
			s.logger.Warnw("Failed to tag model version",
				"model", session.ModelName, "version", info.Version, "error", err)
		}
	}

	return info, nil
}

// History returns a model's training sessions in chronological order.
func (s *LifecycleSvc) History(ctx context.Context, modelName string) ([]models.TrainingSession, error) {
	sessions, err := s.log.History(ctx, modelName)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", modelName, err)
	}
	return sessions, nil
}

// Overview returns the metadata row for every model that has trained.
func (s *LifecycleSvc) Overview(ctx context.Context) ([]models.ModelInfo, error) {
	infos, err := s.meta.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("model overview: %w", err)
	}
	return infos, nil
}
