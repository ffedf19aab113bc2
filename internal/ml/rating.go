package ml

import (
	"context"
	"math"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// RatingModel converts the rating gap between the two teams into a win
// probability on the standard logistic rating curve.
type RatingModel struct {
	version string
	// scale is the rating difference worth a 10x odds swing.
	scale float64
	// homeAdvantage is added to the home side's rating before comparing.
	homeAdvantage float64
}

func NewRatingModel() *RatingModel {
	return &RatingModel{
		version:       initialVersion,
		scale:         400,
		homeAdvantage: 48,
	}
}

func (m *RatingModel) Name() string    { return "rating" }
func (m *RatingModel) Version() string { return m.version }

func (m *RatingModel) PredictProbability(_ context.Context, fv models.FeatureVector) (float64, error) {
	diff := fv.RatingDiff + m.homeAdvantage
	p := 1.0 / (1.0 + math.Pow(10, -diff/m.scale))
	return clampProbability(p), nil
}
