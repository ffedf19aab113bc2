// Package store implements the durable record store over Postgres (games,
// predictions, model metadata), ClickHouse (append-only training log), and
// Redis (team-state memoization cache).
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate creates the relational tables if they do not exist yet.
func Migrate(ctx context.Context, pg PgPool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id            TEXT PRIMARY KEY,
			season             INT NOT NULL,
			week               INT NOT NULL,
			game_date          TIMESTAMPTZ NOT NULL,
			home_team          TEXT NOT NULL,
			away_team          TEXT NOT NULL,
			home_score         INT,
			away_score         INT,
			winner             TEXT,
			home_spread        DOUBLE PRECISION,
			total_points       DOUBLE PRECISION,
			weather_temp       DOUBLE PRECISION,
			weather_wind       DOUBLE PRECISION,
			weather_conditions TEXT,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_period ON games (season, week)`,
		`CREATE INDEX IF NOT EXISTS idx_games_home_team ON games (home_team)`,
		`CREATE INDEX IF NOT EXISTS idx_games_away_team ON games (away_team)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			game_id          TEXT NOT NULL REFERENCES games (game_id),
			model_name       TEXT NOT NULL,
			predicted_winner TEXT NOT NULL,
			win_probability  DOUBLE PRECISION NOT NULL,
			confidence       TEXT NOT NULL,
			predicted_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			actual_winner    TEXT,
			correct          BOOLEAN,
			PRIMARY KEY (game_id, model_name)
		)`,
		`CREATE TABLE IF NOT EXISTS model_metadata (
			model_name       TEXT PRIMARY KEY,
			training_count   INT NOT NULL DEFAULT 0,
			best_accuracy    DOUBLE PRECISION NOT NULL DEFAULT 0,
			current_accuracy DOUBLE PRECISION NOT NULL DEFAULT 0,
			version          TEXT NOT NULL DEFAULT '',
			last_trained_at  TIMESTAMPTZ
		)`,
	}

	for _, stmt := range stmts {
		if _, err := pg.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
