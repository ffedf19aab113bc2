// Backfill reconciles a range of past weeks so a fresh deployment starts
// with enough history for meaningful team states.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/config"
	"github.com/namyrrep/gridiron-predictor/internal/logic"
	"github.com/namyrrep/gridiron-predictor/internal/models"
	"github.com/namyrrep/gridiron-predictor/internal/provider"
	"github.com/namyrrep/gridiron-predictor/internal/store"
)

func main() {
	var (
		season   = flag.Int("season", time.Now().Year(), "season to backfill")
		fromWeek = flag.Int("from", 1, "first week")
		toWeek   = flag.Int("to", 18, "last week")
		pause    = flag.Duration("pause", 2*time.Second, "pause between weeks")
	)
	flag.Parse()

	if *fromWeek < 1 || *toWeek < *fromWeek || *toWeek > 22 {
		fmt.Fprintln(os.Stderr, "invalid week range")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create Postgres pool", "error", err)
	}
	defer pg.Close()

	if err := store.Migrate(ctx, pg); err != nil {
		sugar.Fatalw("Failed to run migrations", "error", err)
	}

	gameStore := store.NewGameStore(pg, logger)
	predictionStore := store.NewPredictionStore(pg, logger)
	espn := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderTimeout, logger)
	syncSvc := logic.NewSyncService(gameStore, predictionStore, espn, nil, logger)

	var totalAdded, totalUpdated, totalFailed int
	for week := *fromWeek; week <= *toWeek; week++ {
		period := models.Period{Season: *season, Week: week}
		result, err := syncSvc.Reconcile(ctx, period)
		if err != nil {
			sugar.Errorw("Week failed, continuing", "period", period.String(), "error", err)
			totalFailed++
			continue
		}
		totalAdded += result.Added
		totalUpdated += result.Updated
		totalFailed += len(result.Failed)
		sugar.Infow("Week done",
			"period", period.String(),
			"added", result.Added,
			"updated", result.Updated,
			"skipped", result.Skipped)

		if week < *toWeek {
			time.Sleep(*pause)
		}
	}

	sugar.Infow("Backfill complete",
		"season", *season,
		"added", totalAdded,
		"updated", totalUpdated,
		"failures", totalFailed)
}
