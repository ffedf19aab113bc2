package ml

import (
	"context"
	"math"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// PoissonModel scores each offense against the opposing defense, treats
// scoring as a Poisson process, and integrates the outcome matrix
// analytically. Points are converted to score-sized events so the Poisson
// assumption holds at the right granularity.
type PoissonModel struct {
	version string
	// pointsPerScore converts points to scoring events.
	pointsPerScore float64
	// homeBoost inflates the home offense's expectancy.
	homeBoost float64
	// maxScores bounds the outcome matrix; the tail mass beyond it is
	// negligible at NFL expectancies.
	maxScores int
}

func NewPoissonModel() *PoissonModel {
	return &PoissonModel{
		version:        initialVersion,
		pointsPerScore: 5.5,
		homeBoost:      1.06,
		maxScores:      16,
	}
}

func (m *PoissonModel) Name() string    { return "poisson" }
func (m *PoissonModel) Version() string { return m.version }

func (m *PoissonModel) PredictProbability(_ context.Context, fv models.FeatureVector) (float64, error) {
	homeExpected := (fv.HomePointsAvg + fv.AwayPointsAllowedAvg) / 2 * m.homeBoost
	awayExpected := (fv.AwayPointsAvg + fv.HomePointsAllowedAvg) / 2

	lambdaHome := homeExpected / m.pointsPerScore
	lambdaAway := awayExpected / m.pointsPerScore

	homePMF := poissonPMF(lambdaHome, m.maxScores)
	awayPMF := poissonPMF(lambdaAway, m.maxScores)

	var homeWin, draw float64
	for h, ph := range homePMF {
		for a, pa := range awayPMF {
			switch {
			case h > a:
				homeWin += ph * pa
			case h == a:
				draw += ph * pa
			}
		}
	}

	// Split the tied mass evenly; overtime is close to a coin flip.
	return clampProbability(homeWin + draw/2), nil
}

func poissonPMF(lambda float64, max int) []float64 {
	pmf := make([]float64, max+1)
	p := math.Exp(-lambda)
	pmf[0] = p
	for k := 1; k <= max; k++ {
		p *= lambda / float64(k)
		pmf[k] = p
	}
	return pmf
}
