// Package handlers exposes the core services over HTTP.
package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

type Config struct {
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Sync       logic.SyncService
	TeamState  logic.TeamStateService
	Prediction logic.PredictionService
	Lifecycle  logic.LifecycleService
}

type Handler struct {
	pg         *pgxpool.Pool
	ch         driver.Conn
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	sync       logic.SyncService
	teamState  logic.TeamStateService
	prediction logic.PredictionService
	lifecycle  logic.LifecycleService
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:         cfg.Postgres,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		sync:       cfg.Sync,
		teamState:  cfg.TeamState,
		prediction: cfg.Prediction,
		lifecycle:  cfg.Lifecycle,
	}
}
