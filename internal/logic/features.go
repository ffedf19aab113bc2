package logic

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// Neutral defaults used when contextual data is missing. Feature assembly is
// best-effort: an absent field never fails the vector.
const (
	neutralRestDays = 7.0
	neutralTempF    = 65.0
	neutralWindMph  = 5.0
	maxTempF        = 100.0
	maxWindMph      = 30.0
)

// FeatureSvc builds the model input vector for a game from the two teams'
// states and the game's contextual attributes.
type FeatureSvc struct {
	states TeamStateService
	logger *zap.SugaredLogger
}

func NewFeatureService(states TeamStateService, logger *zap.Logger) *FeatureSvc {
	return &FeatureSvc{
		states: states,
		logger: logger.Sugar(),
	}
}

func (s *FeatureSvc) Assemble(ctx context.Context, game *models.Game) (*models.FeatureVector, error) {
	period := game.Period()

	home, err := s.states.StateAt(ctx, game.HomeTeam, period)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", game.GameID, err)
	}
	away, err := s.states.StateAt(ctx, game.AwayTeam, period)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", game.GameID, err)
	}

	fv := &models.FeatureVector{
		HomeRating: home.Rating,
		AwayRating: away.Rating,
		RatingDiff: home.Rating - away.Rating,

		HomePointsAvg:        home.PointsAvg,
		AwayPointsAvg:        away.PointsAvg,
		PointsAvgDiff:        home.PointsAvg - away.PointsAvg,
		HomePointsAllowedAvg: home.PointsAllowedAvg,
		AwayPointsAllowedAvg: away.PointsAllowedAvg,
		PointsAllowedDiff:    home.PointsAllowedAvg - away.PointsAllowedAvg,

		HomeStreak: float64(home.Streak),
		AwayStreak: float64(away.Streak),
		StreakDiff: float64(home.Streak - away.Streak),

		HomeFormScore: home.FormScore,
		AwayFormScore: away.FormScore,
		FormDiff:      home.FormScore - away.FormScore,

		HomeWinPct: winPct(home),
		AwayWinPct: winPct(away),

		HomeRestDays: restDays(home, game),
		AwayRestDays: restDays(away, game),
	}

	h2hWins, h2hGames := home.H2HRecord(game.AwayTeam)
	fv.H2HHomeWins = float64(h2hWins)
	fv.H2HGamesPlayed = float64(h2hGames)
	if h2hGames > 0 {
		fv.H2HDominance = float64(h2hWins)/float64(h2hGames) - 0.5
	}

	distance := travelDistance(game.HomeTeam, game.AwayTeam)
	fv.TravelDistance = distance
	fv.TravelBucket = travelBucket(distance)

	s.applyWeather(fv, game)

	if domeTeams[game.HomeTeam] {
		fv.HomeDome = 1
	}

	if game.HomeSpread != nil {
		fv.SpreadValue = *game.HomeSpread
	} else {
		fv.PickEm = 1
	}

	if isDivisionGame(game.HomeTeam, game.AwayTeam) {
		fv.DivisionGame = 1
	}

	return fv, nil
}

func (s *FeatureSvc) applyWeather(fv *models.FeatureVector, game *models.Game) {
	temp := neutralTempF
	if game.WeatherTemp != nil {
		temp = *game.WeatherTemp
	}
	wind := neutralWindMph
	if game.WeatherWind != nil {
		wind = *game.WeatherWind
	}

	// Indoor games see neutral conditions regardless of the forecast.
	if domeTeams[game.HomeTeam] {
		temp = neutralTempF
		wind = 0
	}

	fv.TempNormalized = temp / maxTempF
	if temp < 32 || temp > 85 {
		fv.TempExtreme = 1
	}
	fv.WindNormalized = wind / maxWindMph
	if wind > 15 {
		fv.WindStrong = 1
	}

	if game.WeatherConditions != nil && !domeTeams[game.HomeTeam] {
		conditions := strings.ToLower(*game.WeatherConditions)
		for _, w := range []string{"rain", "snow", "storm"} {
			if strings.Contains(conditions, w) {
				fv.BadWeather = 1
				break
			}
		}
	}
}

func winPct(state *models.TeamState) float64 {
	season := state.Wins + state.Losses
	if season == 0 {
		return 0.5
	}
	return float64(state.Wins) / float64(season)
}

// restDays measures days since the team's previous game, defaulting to a
// standard week when no prior game is known.
func restDays(state *models.TeamState, game *models.Game) float64 {
	if state.LastPlayed.IsZero() || game.GameDate.IsZero() || !game.GameDate.After(state.LastPlayed) {
		return neutralRestDays
	}
	days := game.GameDate.Sub(state.LastPlayed).Hours() / 24
	if days > 30 {
		return neutralRestDays
	}
	return days
}
