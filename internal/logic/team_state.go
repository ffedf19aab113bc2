package logic

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// StateParams tunes the state fold.
type StateParams struct {
	EloK        float64
	RatingBase  float64
	RatingScale float64
	FormWindow  int
	H2HDepth    int
}

// neutralPointsAvg stands in for scoring averages until a team has played.
const neutralPointsAvg = 20.0

// TeamStateSvc folds a team's completed games into its cumulative state.
type TeamStateSvc struct {
	games  GameStore
	cache  StateCache
	params StateParams
	logger *zap.SugaredLogger
}

func NewTeamStateService(games GameStore, cache StateCache, params StateParams, logger *zap.Logger) *TeamStateSvc {
	return &TeamStateSvc{
		games:  games,
		cache:  cache,
		params: params,
		logger: logger.Sugar(),
	}
}

// StateAt returns the team's state after every completed game up to and
// including the period. Recomputing from the same history always yields the
// same state; the cache is a pure memoization of that fold.
func (s *TeamStateSvc) StateAt(ctx context.Context, team string, period models.Period) (*models.TeamState, error) {
	if s.cache != nil {
		if cached := s.cache.Get(ctx, team, period); cached != nil {
			return cached, nil
		}
	}

	games, err := s.games.CompletedForTeam(ctx, team, period)
	if err != nil {
		return nil, fmt.Errorf("load history for %s at %s: %w", team, period, err)
	}

	state := s.fold(team, period, games)

	if s.cache != nil {
		s.cache.Set(ctx, state)
	}
	return state, nil
}

func (s *TeamStateSvc) fold(team string, period models.Period, games []models.Game) *models.TeamState {
	state := &models.TeamState{
		Team:             team,
		Season:           period.Season,
		Week:             period.Week,
		Rating:           s.params.RatingBase,
		PointsAvg:        neutralPointsAvg,
		PointsAllowedAvg: neutralPointsAvg,
		HeadToHead:       make(map[string][]models.GameOutcome),
	}

	for i := range games {
		game := &games[i]
		// A winner without scores cannot feed the rolling stats; skip the
		// row rather than trust every store to enforce the pairing.
		if !game.Completed() || game.HomeScore == nil || game.AwayScore == nil {
			continue
		}
		s.applyGame(state, game)
	}
	return state
}

func (s *TeamStateSvc) applyGame(state *models.TeamState, game *models.Game) {
	outcome := outcomeFor(state.Team, game)

	// Rating update against a baseline-rated opponent keeps the state a
	// function of this team's games alone.
	expected := 1.0 / (1.0 + math.Pow(10, (s.params.RatingBase-state.Rating)/s.params.RatingScale))
	actual := 0.0
	if outcome.Won {
		actual = 1.0
	}
	state.Rating += s.params.EloK * (actual - expected)

	// Season totals reset when the fold crosses into a new season.
	if game.Season == state.Season {
		if outcome.Won {
			state.Wins++
		} else {
			state.Losses++
		}
	}
	state.GamesPlayed++

	if outcome.Won {
		if state.Streak > 0 {
			state.Streak++
		} else {
			state.Streak = 1
		}
	} else {
		if state.Streak < 0 {
			state.Streak--
		} else {
			state.Streak = -1
		}
	}

	state.Window = append(state.Window, outcome)
	if len(state.Window) > s.params.FormWindow {
		state.Window = state.Window[1:]
	}

	h2h := append(state.HeadToHead[outcome.Opponent], outcome)
	if len(h2h) > s.params.H2HDepth {
		h2h = h2h[1:]
	}
	state.HeadToHead[outcome.Opponent] = h2h

	state.LastPlayed = game.GameDate

	s.refreshWindowStats(state)
}

// refreshWindowStats recomputes the rolling averages and the recency-weighted
// form score from the current window.
func (s *TeamStateSvc) refreshWindowStats(state *models.TeamState) {
	if len(state.Window) == 0 {
		state.PointsAvg = neutralPointsAvg
		state.PointsAllowedAvg = neutralPointsAvg
		state.FormScore = 0.5
		return
	}

	var scored, allowed float64
	var formNum, formDen float64
	for i, outcome := range state.Window {
		scored += float64(outcome.PointsFor)
		allowed += float64(outcome.PointsAgainst)

		weight := float64(i + 1)
		formDen += weight
		if outcome.Won {
			formNum += weight
		}
	}
	n := float64(len(state.Window))
	state.PointsAvg = scored / n
	state.PointsAllowedAvg = allowed / n
	state.FormScore = formNum / formDen
}

func outcomeFor(team string, game *models.Game) models.GameOutcome {
	outcome := models.GameOutcome{GameID: game.GameID}
	if game.HomeTeam == team {
		outcome.Opponent = game.AwayTeam
		outcome.PointsFor = *game.HomeScore
		outcome.PointsAgainst = *game.AwayScore
	} else {
		outcome.Opponent = game.HomeTeam
		outcome.PointsFor = *game.AwayScore
		outcome.PointsAgainst = *game.HomeScore
	}
	if game.Winner != nil {
		outcome.Won = *game.Winner == team
	}
	return outcome
}
