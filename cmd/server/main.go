package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/config"
	"github.com/namyrrep/gridiron-predictor/internal/handlers"
	"github.com/namyrrep/gridiron-predictor/internal/logic"
	"github.com/namyrrep/gridiron-predictor/internal/ml"
	"github.com/namyrrep/gridiron-predictor/internal/provider"
	"github.com/namyrrep/gridiron-predictor/internal/store"
	"github.com/namyrrep/gridiron-predictor/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
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
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping Postgres", "error", err)
	}

	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Failed to parse ClickHouse URL", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Failed to parse Redis URL", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to ping Redis", "error", err)
	}

	if err := store.Migrate(ctx, pg); err != nil {
		sugar.Fatalw("Failed to run migrations", "error", err)
	}
	if err := store.EnsureTrainingLog(ctx, ch); err != nil {
		sugar.Fatalw("Failed to ensure training log table", "error", err)
	}

	registry, err := ml.LoadRegistry(cfg.ModelDir, logger)
	if err != nil {
		sugar.Fatalw("Failed to load model registry", "error", err)
	}

	// Stores
	gameStore := store.NewGameStore(pg, logger)
	predictionStore := store.NewPredictionStore(pg, logger)
	metaStore := store.NewModelMetaStore(pg)
	trainingLog := store.NewTrainingLog(ch, logger)
	stateCache := store.NewStateCache(rdb, cfg.StateCacheTTL, logger)

	// Provider
	espn := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderTimeout, logger)

	// Services
	stateSvc := logic.NewTeamStateService(gameStore, stateCache, logic.StateParams{
		EloK:        cfg.EloK,
		RatingBase:  cfg.RatingBase,
		RatingScale: cfg.RatingScale,
		FormWindow:  cfg.FormWindow,
		H2HDepth:    cfg.H2HDepth,
	}, logger)
	featureSvc := logic.NewFeatureService(stateSvc, logger)
	syncSvc := logic.NewSyncService(gameStore, predictionStore, espn, stateCache, logger)
	predictionSvc := logic.NewPredictionService(
		gameStore, predictionStore, featureSvc,
		registry.Models(), cfg.ModelTimeout,
		logic.ConfidenceThresholds{High: cfg.HighThreshold, Medium: cfg.MediumThreshold},
		logger)
	lifecycleSvc := logic.NewLifecycleService(metaStore, trainingLog, registry, logger)

	updater := worker.NewUpdater(worker.UpdaterConfig{
		Interval: cfg.UpdateInterval,
		Sync:     syncSvc,
		Logger:   logger,
	})
	updater.Start()

	handler := handlers.New(handlers.Config{
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Sync:       syncSvc,
		TeamState:  stateSvc,
		Prediction: predictionSvc,
		Lifecycle:  lifecycleSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Starting server", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Infow("Shutting down")
	updater.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Forced shutdown", "error", err)
	}
	sugar.Infow("Server stopped")
}
