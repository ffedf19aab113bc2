package models

import "time"

// ModelInfo is the lifecycle metadata kept per model. BestAccuracy is
// monotonically non-decreasing; TrainingCount increments exactly once per
// recorded session.
type ModelInfo struct {
	ModelName       string    `json:"model_name"`
	TrainingCount   int       `json:"training_count"`
	BestAccuracy    float64   `json:"best_accuracy"`
	CurrentAccuracy float64   `json:"current_accuracy"`
	Version         string    `json:"version"`
	LastTrainedAt   time.Time `json:"last_trained_at"`
}

// TrainingSession is one append-only log row describing a completed
// training run. Rows are never mutated after insertion.
type TrainingSession struct {
	ID              string            `json:"id"`
	ModelName       string            `json:"model_name"`
	TrainedAt       time.Time         `json:"trained_at"`
	DurationSeconds float64           `json:"duration_seconds"`
	SampleCount     int               `json:"sample_count"`
	Accuracy        float64           `json:"accuracy"`
	Precision       float64           `json:"precision"`
	Recall          float64           `json:"recall"`
	F1              float64           `json:"f1"`
	AUC             float64           `json:"auc"`
	Hyperparameters map[string]string `json:"hyperparameters,omitempty"`
}
