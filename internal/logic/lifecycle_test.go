package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

func trainingSession(model string, accuracy float64) *models.TrainingSession {
	return &models.TrainingSession{
		ModelName:       model,
		TrainedAt:       time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		DurationSeconds: 42.5,
		SampleCount:     1200,
		Accuracy:        accuracy,
		Precision:       accuracy,
		Recall:          accuracy,
		F1:              accuracy,
		AUC:             accuracy,
		Hyperparameters: map[string]string{"window": "5"},
	}
}

func TestRecordTrainingSession(t *testing.T) {
	meta := &MockModelMetaStore{}
	log := &MockTrainingLog{}
	svc := NewLifecycleService(meta, log, nil, zap.NewNop())

	info, err := svc.RecordTrainingSession(context.Background(), trainingSession("logistic", 0.64))
	if err != nil {
		t.Fatalf("RecordTrainingSession: %v", err)
	}

	if info.TrainingCount != 1 {
		t.Errorf("TrainingCount = %d, want 1", info.TrainingCount)
	}
	if info.CurrentAccuracy != 0.64 || info.BestAccuracy != 0.64 {
		t.Errorf("accuracy = %v/%v, want 0.64/0.64", info.CurrentAccuracy, info.BestAccuracy)
	}
	if info.Version != "v1-20250801" {
		t.Errorf("Version = %q, want v1-20250801", info.Version)
	}
	if len(log.Sessions) != 1 {
		t.Fatalf("log has %d sessions, want 1", len(log.Sessions))
	}
	if log.Sessions[0].ID == "" {
		t.Error("session must receive a generated id")
	}
}

func TestBestAccuracyOnlyImproves(t *testing.T) {
	meta := &MockModelMetaStore{}
	log := &MockTrainingLog{}
	svc := NewLifecycleService(meta, log, nil, zap.NewNop())

	accuracies := []float64{0.60, 0.68, 0.63, 0.55}
	wantBest := []float64{0.60, 0.68, 0.68, 0.68}

	for i, acc := range accuracies {
		info, err := svc.RecordTrainingSession(context.Background(), trainingSession("rating", acc))
		if err != nil {
			t.Fatalf("session %d: %v", i, err)
		}
		if info.CurrentAccuracy != acc {
			t.Errorf("session %d: CurrentAccuracy = %v, want %v", i, info.CurrentAccuracy, acc)
		}
		if info.BestAccuracy != wantBest[i] {
			t.Errorf("session %d: BestAccuracy = %v, want %v", i, info.BestAccuracy, wantBest[i])
		}
		if info.TrainingCount != i+1 {
			t.Errorf("session %d: TrainingCount = %d, want %d", i, info.TrainingCount, i+1)
		}
	}

	history, err := svc.History(context.Background(), "rating")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 4 {
		t.Errorf("history length = %d, want 4", len(history))
	}
}

func TestRecordTrainingSessionValidation(t *testing.T) {
	svc := NewLifecycleService(&MockModelMetaStore{}, &MockTrainingLog{}, nil, zap.NewNop())

	if _, err := svc.RecordTrainingSession(context.Background(), &models.TrainingSession{}); err == nil {
		t.Error("empty model name must be rejected")
	}
}

func TestRecordTrainingSessionLogFailure(t *testing.T) {
	log := &MockTrainingLog{
		AppendFunc: func(ctx context.Context, session *models.TrainingSession) error {
			return errors.New("clickhouse unreachable")
		},
	}
	meta := &MockModelMetaStore{}
	svc := NewLifecycleService(meta, log, nil, zap.NewNop())

	if _, err := svc.RecordTrainingSession(context.Background(), trainingSession("form", 0.6)); err == nil {
		t.Fatal("append failure must surface")
	}
	// Metadata is not advanced when the log write fails.
	if len(meta.Rows) != 0 {
		t.Errorf("metadata rows = %d, want 0 after failed append", len(meta.Rows))
	}
}
