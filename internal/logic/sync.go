// Package logic implements the core services: record synchronization, team
// state derivation, feature assembly, ensemble prediction, and model
// lifecycle tracking.
package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

var (
	gamesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridiron_games_added_total",
		Help: "Total number of new games inserted during reconciliation",
	})

	gamesPatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridiron_games_patched_total",
		Help: "Total number of games patched with final results",
	})

	syncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridiron_sync_failures_total",
		Help: "Total number of per-game failures during reconciliation",
	})
)

const syncConcurrency = 4

// SyncSvc reconciles the local game record with the upstream feed.
type SyncSvc struct {
	games       GameStore
	predictions PredictionStore
	provider    Provider
	cache       StateCache
	logger      *zap.SugaredLogger
}

func NewSyncService(games GameStore, predictions PredictionStore, provider Provider, cache StateCache, logger *zap.Logger) *SyncSvc {
	return &SyncSvc{
		games:       games,
		predictions: predictions,
		provider:    provider,
		cache:       cache,
		logger:      logger.Sugar(),
	}
}

// Reconcile brings one period up to date: games the feed lists but the store
// does not know get inserted, and known games still missing a result get
// patched once the feed reports completion. Re-running on an already-synced
// period performs zero writes. Per-game failures are isolated and reported
// in the result instead of aborting the pass.
func (s *SyncSvc) Reconcile(ctx context.Context, period models.Period) (*models.SyncResult, error) {
	result := &models.SyncResult{Period: period}

	known, err := s.games.KnownGameIDs(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", period, err)
	}

	listing, err := s.provider.ListPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", period, err)
	}

	type outcome struct {
		gameID string
		added  bool
		err    error
	}
	outcomes := make([]outcome, 0, len(listing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	results := make(chan outcome, len(listing))

	for i := range listing {
		game := listing[i]
		if known[game.GameID] {
			result.Skipped++
			continue
		}
		g.Go(func() error {
			inserted, err := s.games.Insert(gctx, &game)
			if err != nil {
				results <- outcome{gameID: game.GameID, err: &models.ProviderError{GameID: game.GameID, Err: err}}
				return nil
			}
			results <- outcome{gameID: game.GameID, added: inserted}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", period, err)
	}
	close(results)

	for o := range results {
		outcomes = append(outcomes, o)
	}
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			s.logger.Warnw("Failed to add game", "game_id", o.gameID, "error", o.err)
			result.Failed = append(result.Failed, o.gameID)
			syncFailures.Inc()
		case o.added:
			result.Added++
			gamesAdded.Inc()
		default:
			result.Skipped++
		}
	}

	if err := s.patchIncomplete(ctx, period, result); err != nil {
		return nil, fmt.Errorf("reconcile %s: %w", period, err)
	}

	sort.Strings(result.Failed)
	s.logger.Infow("Reconciled period",
		"period", period.String(),
		"added", result.Added,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"failed", len(result.Failed))
	return result, nil
}

// patchIncomplete re-checks every stored game in the period that has no
// result yet and patches the ones the feed now reports complete.
func (s *SyncSvc) patchIncomplete(ctx context.Context, period models.Period, result *models.SyncResult) error {
	pending, err := s.games.Incomplete(ctx, period)
	if err != nil {
		return err
	}

	for i := range pending {
		stored := &pending[i]
		fresh, err := s.provider.FetchGame(ctx, stored.GameID, period)
		if err != nil {
			s.logger.Warnw("Failed to re-fetch pending game", "game_id", stored.GameID, "error", err)
			result.Failed = append(result.Failed, stored.GameID)
			syncFailures.Inc()
			continue
		}
		if !fresh.Completed() {
			continue
		}

		if err := s.games.PatchResult(ctx, fresh); err != nil {
			s.logger.Errorw("Failed to patch game result", "game_id", stored.GameID, "error", err)
			result.Failed = append(result.Failed, stored.GameID)
			syncFailures.Inc()
			continue
		}
		result.Updated++
		gamesPatched.Inc()

		s.afterCompletion(ctx, fresh)
	}
	return nil
}

// afterCompletion settles stored predictions against the final result and
// drops both teams' memoized states, which now include one more game.
func (s *SyncSvc) afterCompletion(ctx context.Context, game *models.Game) {
	if game.Winner != nil && s.predictions != nil {
		settled, err := s.predictions.Settle(ctx, game.GameID, *game.Winner)
		if err != nil {
			s.logger.Errorw("Failed to settle predictions", "game_id", game.GameID, "error", err)
		} else if settled > 0 {
			s.logger.Infow("Settled predictions", "game_id", game.GameID, "count", settled)
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, game.HomeTeam, game.Season)
		s.cache.Invalidate(ctx, game.AwayTeam, game.Season)
	}
}
