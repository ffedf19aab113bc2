// Package worker runs the periodic reconciliation loop that keeps the game
// record current during the season without manual sync calls.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/logic"
	"github.com/namyrrep/gridiron-predictor/internal/models"
)

var (
	updaterRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridiron_updater_runs_total",
		Help: "Total number of background reconciliation passes",
	})

	updaterErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridiron_updater_errors_total",
		Help: "Total number of failed background reconciliation passes",
	})

	updaterLastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridiron_updater_last_run_timestamp",
		Help: "Unix timestamp of the last completed reconciliation pass",
	})
)

const regularSeasonWeeks = 18

// UpdaterConfig configures the background updater.
type UpdaterConfig struct {
	Interval time.Duration
	Sync     logic.SyncService
	Logger   *zap.Logger
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// Updater reconciles the current period on a fixed interval.
type Updater struct {
	interval time.Duration
	sync     logic.SyncService
	now      func() time.Time
	logger   *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewUpdater(cfg UpdaterConfig) *Updater {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Updater{
		interval: cfg.Interval,
		sync:     cfg.Sync,
		now:      cfg.Now,
		logger:   cfg.Logger.Sugar(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the loop. The first pass runs immediately.
func (u *Updater) Start() {
	u.wg.Add(1)
	go u.run()
	u.logger.Infow("Background updater started", "interval", u.interval)
}

// Stop cancels the loop and waits for an in-flight pass to finish.
func (u *Updater) Stop() {
	u.cancel()
	u.wg.Wait()
	u.logger.Infow("Background updater stopped")
}

func (u *Updater) run() {
	defer u.wg.Done()

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.pass()
	for {
		select {
		case <-ticker.C:
			u.pass()
		case <-u.ctx.Done():
			return
		}
	}
}

func (u *Updater) pass() {
	period := CurrentPeriod(u.now())
	result, err := u.sync.Reconcile(u.ctx, period)
	updaterRuns.Inc()
	updaterLastRun.SetToCurrentTime()
	if err != nil {
		updaterErrors.Inc()
		u.logger.Errorw("Reconciliation pass failed", "period", period.String(), "error", err)
		return
	}
	if result.Added > 0 || result.Updated > 0 || len(result.Failed) > 0 {
		u.logger.Infow("Reconciliation pass finished",
			"period", period.String(),
			"added", result.Added,
			"updated", result.Updated,
			"failed", len(result.Failed))
	}
}

// CurrentPeriod estimates the active season week. The season starts in
// September; weeks advance every 7 days from September 1 and cap at the
// regular season length. Before September the previous season's final week
// is considered current.
func CurrentPeriod(now time.Time) models.Period {
	year := now.Year()
	if now.Month() < time.September {
		return models.Period{Season: year - 1, Week: regularSeasonWeeks}
	}
	seasonStart := time.Date(year, time.September, 1, 0, 0, 0, 0, now.Location())
	week := int(now.Sub(seasonStart).Hours()/(24*7)) + 1
	if week > regularSeasonWeeks {
		week = regularSeasonWeeks
	}
	return models.Period{Season: year, Week: week}
}
