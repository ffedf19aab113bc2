package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/ml"
	"github.com/namyrrep/gridiron-predictor/internal/models"
)

var (
	predictionsMade = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridiron_predictions_total",
		Help: "Total number of ensemble predictions produced",
	})

	modelFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridiron_model_failures_total",
		Help: "Model inference failures by model name",
	}, []string{"model"})
)

// ConfidenceThresholds bucket a fused probability into a label.
type ConfidenceThresholds struct {
	High   float64
	Medium float64
}

func (t ConfidenceThresholds) Label(probability float64) string {
	switch {
	case probability >= t.High:
		return "High"
	case probability >= t.Medium:
		return "Medium"
	default:
		return "Low"
	}
}

// PredictionSvc fuses the model set into one decision per game.
type PredictionSvc struct {
	games        GameStore
	predictions  PredictionStore
	features     FeatureService
	models       []ml.Model
	modelTimeout time.Duration
	thresholds   ConfidenceThresholds
	logger       *zap.SugaredLogger
}

func NewPredictionService(
	games GameStore,
	predictions PredictionStore,
	features FeatureService,
	modelSet []ml.Model,
	modelTimeout time.Duration,
	thresholds ConfidenceThresholds,
	logger *zap.Logger,
) *PredictionSvc {
	return &PredictionSvc{
		games:        games,
		predictions:  predictions,
		features:     features,
		models:       modelSet,
		modelTimeout: modelTimeout,
		thresholds:   thresholds,
		logger:       logger.Sugar(),
	}
}

// modelVote is one model's valid response.
type modelVote struct {
	model       string
	homeWinProb float64
}

// PredictGame runs every model on the game's feature vector, fuses the valid
// responses by majority vote, persists the per-model and ensemble rows, and
// returns the ensemble decision.
func (s *PredictionSvc) PredictGame(ctx context.Context, gameID string) (*models.Prediction, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", gameID, err)
	}

	fv, err := s.features.Assemble(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", gameID, err)
	}

	votes := s.dispatch(ctx, gameID, *fv)
	if len(votes) == 0 {
		return nil, fmt.Errorf("predict %s: %w", gameID, models.ErrNoViableModel)
	}

	now := time.Now().UTC()
	for _, vote := range votes {
		row := voteToPrediction(game, vote, now, s.thresholds)
		if err := s.predictions.Insert(ctx, &row); err != nil {
			s.logger.Errorw("Failed to persist model prediction",
				"game_id", gameID, "model", vote.model, "error", err)
		}
	}

	ensemble := s.fuse(game, votes, now)
	if err := s.predictions.Insert(ctx, ensemble); err != nil {
		return nil, fmt.Errorf("predict %s: persist ensemble: %w", gameID, err)
	}

	predictionsMade.Inc()
	s.logger.Infow("Predicted game",
		"game_id", gameID,
		"winner", ensemble.PredictedWinner,
		"probability", ensemble.WinProbability,
		"confidence", ensemble.Confidence,
		"models", len(votes))
	return ensemble, nil
}

// modelResponse pairs a model's vote with its inference error.
type modelResponse struct {
	vote modelVote
	err  error
}

// dispatch runs every model concurrently with a bounded per-model timeout.
// A model that errors, returns an out-of-range probability, or misses the
// deadline is excluded from the respondent pool.
func (s *PredictionSvc) dispatch(ctx context.Context, gameID string, fv models.FeatureVector) []modelVote {
	channels := make([]chan modelResponse, len(s.models))
	for i, m := range s.models {
		m := m
		ch := make(chan modelResponse, 1)
		channels[i] = ch
		go func() {
			mctx, cancel := context.WithTimeout(ctx, s.modelTimeout)
			defer cancel()
			p, err := m.PredictProbability(mctx, fv)
			ch <- modelResponse{vote: modelVote{model: m.Name(), homeWinProb: p}, err: err}
		}()
	}

	deadline := time.Now().Add(s.modelTimeout)

	var votes []modelVote
	for i, m := range s.models {
		resp, ok := awaitResponse(channels[i], deadline)
		if !ok {
			s.logger.Warnw("Model timed out",
				"game_id", gameID, "model", m.Name(), "timeout", s.modelTimeout)
			modelFailures.WithLabelValues(m.Name()).Inc()
			continue
		}
		if resp.err != nil {
			s.logger.Warnw("Model inference failed",
				"game_id", gameID, "model", m.Name(), "error", resp.err)
			modelFailures.WithLabelValues(m.Name()).Inc()
			continue
		}
		if resp.vote.homeWinProb < 0 || resp.vote.homeWinProb > 1 {
			s.logger.Warnw("Model returned out-of-range probability",
				"game_id", gameID, "model", m.Name(), "probability", resp.vote.homeWinProb)
			modelFailures.WithLabelValues(m.Name()).Inc()
			continue
		}
		votes = append(votes, resp.vote)
	}

	// Fusion must not depend on response arrival order.
	sort.Slice(votes, func(i, j int) bool { return votes[i].model < votes[j].model })
	return votes
}

// awaitResponse receives a model's response, waiting at most until the
// shared deadline. A response already buffered is always taken, even after
// the deadline has passed: only a model that has truly not answered yet is
// reported as timed out.
func awaitResponse(ch <-chan modelResponse, deadline time.Time) (modelResponse, bool) {
	select {
	case resp := <-ch:
		return resp, true
	default:
	}
	select {
	case resp := <-ch:
		return resp, true
	case <-time.After(time.Until(deadline)):
		return modelResponse{}, false
	}
}

// fuse applies majority vote over the respondents. The fused probability is
// the mean probability the winning side's voters assign to their pick. An
// even split compares the two sides' mean conviction; if those are equal
// too, the lexicographically first team id wins so repeated runs agree.
func (s *PredictionSvc) fuse(game *models.Game, votes []modelVote, at time.Time) *models.Prediction {
	var homeVotes, awayVotes int
	var homeConviction, awayConviction float64
	for _, vote := range votes {
		if vote.homeWinProb >= 0.5 {
			homeVotes++
			homeConviction += vote.homeWinProb
		} else {
			awayVotes++
			awayConviction += 1 - vote.homeWinProb
		}
	}
	if homeVotes > 0 {
		homeConviction /= float64(homeVotes)
	}
	if awayVotes > 0 {
		awayConviction /= float64(awayVotes)
	}

	winner := game.HomeTeam
	probability := homeConviction
	switch {
	case homeVotes > awayVotes:
	case awayVotes > homeVotes:
		winner = game.AwayTeam
		probability = awayConviction
	case homeConviction > awayConviction:
	case awayConviction > homeConviction:
		winner = game.AwayTeam
		probability = awayConviction
	default:
		if game.AwayTeam < game.HomeTeam {
			winner = game.AwayTeam
			probability = awayConviction
		}
	}

	return &models.Prediction{
		GameID:          game.GameID,
		ModelName:       models.EnsembleModelName,
		PredictedWinner: winner,
		WinProbability:  probability,
		Confidence:      s.thresholds.Label(probability),
		PredictedAt:     at,
	}
}

func voteToPrediction(game *models.Game, vote modelVote, at time.Time, thresholds ConfidenceThresholds) models.Prediction {
	winner := game.HomeTeam
	probability := vote.homeWinProb
	if vote.homeWinProb < 0.5 {
		winner = game.AwayTeam
		probability = 1 - vote.homeWinProb
	}
	return models.Prediction{
		GameID:          game.GameID,
		ModelName:       vote.model,
		PredictedWinner: winner,
		WinProbability:  probability,
		Confidence:      thresholds.Label(probability),
		PredictedAt:     at,
	}
}

// PredictPeriod predicts every game in the period that has no result yet.
// Per-game failures are logged and skipped so one bad game does not block
// the rest of the slate.
func (s *PredictionSvc) PredictPeriod(ctx context.Context, period models.Period) ([]models.Prediction, error) {
	pending, err := s.games.Incomplete(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("predict period %s: %w", period, err)
	}

	var out []models.Prediction
	for i := range pending {
		pred, err := s.PredictGame(ctx, pending[i].GameID)
		if err != nil {
			s.logger.Warnw("Skipping unpredictable game",
				"game_id", pending[i].GameID, "error", err)
			continue
		}
		out = append(out, *pred)
	}
	return out, nil
}

// PredictionsForPeriod returns stored predictions joined with their games.
func (s *PredictionSvc) PredictionsForPeriod(ctx context.Context, period models.Period) ([]models.PeriodPrediction, error) {
	return s.predictions.ForPeriod(ctx, period)
}

// PredictionsForGame returns every stored prediction row for one game,
// the ensemble row included. A game with no predictions yields ErrNotFound.
func (s *PredictionSvc) PredictionsForGame(ctx context.Context, gameID string) ([]models.Prediction, error) {
	preds, err := s.predictions.ForGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("predictions for %s: %w", gameID, err)
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("predictions for %s: %w", gameID, models.ErrNotFound)
	}
	return preds, nil
}

// SettleGame marks every stored prediction for a completed game as correct
// or not. Already-settled rows are left untouched.
func (s *PredictionSvc) SettleGame(ctx context.Context, gameID string) error {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return fmt.Errorf("settle %s: %w", gameID, err)
	}
	if game.Winner == nil {
		return fmt.Errorf("settle %s: game has no result yet", gameID)
	}
	if _, err := s.predictions.Settle(ctx, gameID, *game.Winner); err != nil {
		return fmt.Errorf("settle %s: %w", gameID, err)
	}
	return nil
}
