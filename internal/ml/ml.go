// Package ml holds the prediction models. Every model maps the same
// fixed-shape feature vector to a home-win probability; given identical
// inputs and weights a model always returns the same output.
package ml

import (
	"context"
	"math"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// Model is a single predictor in the ensemble.
type Model interface {
	Name() string
	Version() string
	// PredictProbability returns the probability that the home team wins,
	// in [0, 1].
	PredictProbability(ctx context.Context, fv models.FeatureVector) (float64, error)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// clampProbability keeps outputs strictly inside (0, 1) so downstream
// averaging never sees a degenerate certainty.
func clampProbability(p float64) float64 {
	const eps = 0.001
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
