package ml

import (
	"context"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// MarketModel reads the betting line. A negative home spread means the
// market favors the home side; the slope converts points of spread into
// log-odds. With no line posted the game is treated as a coin flip with a
// small home edge.
type MarketModel struct {
	version string
	slope   float64
}

func NewMarketModel() *MarketModel {
	return &MarketModel{
		version: initialVersion,
		slope:   0.145,
	}
}

func (m *MarketModel) Name() string    { return "market" }
func (m *MarketModel) Version() string { return m.version }

func (m *MarketModel) PredictProbability(_ context.Context, fv models.FeatureVector) (float64, error) {
	if fv.PickEm == 1 {
		return clampProbability(sigmoid(0.15)), nil
	}
	return clampProbability(sigmoid(-fv.SpreadValue * m.slope)), nil
}
