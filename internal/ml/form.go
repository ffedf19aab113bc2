package ml

import (
	"context"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// FormModel looks only at recent trajectory: weighted form over the rolling
// window, momentum from the active streak, and season win rate.
type FormModel struct {
	version       string
	formWeight    float64
	streakWeight  float64
	winPctWeight  float64
	homeFieldBias float64
}

func NewFormModel() *FormModel {
	return &FormModel{
		version:       initialVersion,
		formWeight:    2.0,
		streakWeight:  0.12,
		winPctWeight:  1.5,
		homeFieldBias: 0.15,
	}
}

func (m *FormModel) Name() string    { return "form" }
func (m *FormModel) Version() string { return m.version }

func (m *FormModel) PredictProbability(_ context.Context, fv models.FeatureVector) (float64, error) {
	z := m.homeFieldBias +
		m.formWeight*fv.FormDiff +
		m.streakWeight*fv.StreakDiff +
		m.winPctWeight*(fv.HomeWinPct-fv.AwayWinPct)
	return clampProbability(sigmoid(z)), nil
}
