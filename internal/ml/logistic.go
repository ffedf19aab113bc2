package ml

import (
	"context"
	"fmt"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// LogisticModel is a logistic regression over the full feature vector.
// Weights are keyed by feature name so a stored model survives reordering
// of the struct fields.
type LogisticModel struct {
	version string
	bias    float64
	weights map[string]float64
}

func defaultLogisticWeights() map[string]float64 {
	return map[string]float64{
		"rating_diff":         0.010,
		"points_avg_diff":     0.060,
		"points_allowed_diff": -0.050,
		"streak_diff":         0.040,
		"form_diff":           1.200,
		"home_win_pct":        0.800,
		"away_win_pct":        -0.800,
		"h2h_dominance":       0.400,
		"home_rest_days":      0.020,
		"away_rest_days":      -0.020,
		"travel_bucket":       0.050,
		"bad_weather":         -0.050,
		"home_dome":           0.050,
		"spread_value":        -0.080,
		"division_game":       -0.050,
	}
}

func NewLogisticModel() *LogisticModel {
	return &LogisticModel{
		version: initialVersion,
		bias:    0.18, // home field advantage
		weights: defaultLogisticWeights(),
	}
}

func (m *LogisticModel) Name() string    { return "logistic" }
func (m *LogisticModel) Version() string { return m.version }

func (m *LogisticModel) PredictProbability(_ context.Context, fv models.FeatureVector) (float64, error) {
	names := models.FeatureNames()
	values := fv.Values()
	if len(names) != len(values) {
		return 0, fmt.Errorf("feature vector shape mismatch: %d names, %d values", len(names), len(values))
	}

	z := m.bias
	for i, name := range names {
		if w, ok := m.weights[name]; ok {
			z += w * values[i]
		}
	}
	return clampProbability(sigmoid(z)), nil
}
