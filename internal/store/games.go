package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// GameStore persists game records. Rows are append-then-patch only:
// identity and participants never change after insert, and a winner once
// set never reverts.
type GameStore struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewGameStore(pg PgPool, logger *zap.Logger) *GameStore {
	return &GameStore{pg: pg, logger: logger.Sugar()}
}

const gameColumns = `game_id, season, week, game_date, home_team, away_team,
	home_score, away_score, winner, home_spread, total_points,
	weather_temp, weather_wind, weather_conditions, created_at, updated_at`

// Insert stores a newly sighted game. It reports false when the game id
// already exists, leaving the existing row untouched.
func (s *GameStore) Insert(ctx context.Context, g *models.Game) (bool, error) {
	tag, err := s.pg.Exec(ctx, `
		INSERT INTO games (
			game_id, season, week, game_date, home_team, away_team,
			home_score, away_score, winner, home_spread, total_points,
			weather_temp, weather_wind, weather_conditions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (game_id) DO NOTHING
	`, g.GameID, g.Season, g.Week, g.GameDate, g.HomeTeam, g.AwayTeam,
		g.HomeScore, g.AwayScore, g.Winner, g.HomeSpread, g.TotalPoints,
		g.WeatherTemp, g.WeatherWind, g.WeatherConditions)
	if err != nil {
		return false, fmt.Errorf("insert game %s: %w", g.GameID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// PatchResult records a final result for a game that has none yet. The
// guarded update makes the completion transition one-way: re-patching an
// already completed game with the same winner is a no-op, while any write
// that would change a set winner is rejected as an integrity violation.
func (s *GameStore) PatchResult(ctx context.Context, g *models.Game) error {
	if g.Winner == nil || g.HomeScore == nil || g.AwayScore == nil {
		return &models.IntegrityError{GameID: g.GameID, Field: "winner"}
	}

	tag, err := s.pg.Exec(ctx, `
		UPDATE games
		SET home_score = $2, away_score = $3, winner = $4, updated_at = now()
		WHERE game_id = $1 AND (winner IS NULL OR winner = '')
	`, g.GameID, *g.HomeScore, *g.AwayScore, *g.Winner)
	if err != nil {
		return fmt.Errorf("patch game %s: %w", g.GameID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var existing *string
	err = s.pg.QueryRow(ctx, `SELECT winner FROM games WHERE game_id = $1`, g.GameID).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("patch game %s: %w", g.GameID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("patch game %s: %w", g.GameID, err)
	}
	if existing != nil && *existing == *g.Winner {
		return nil
	}
	return &models.IntegrityError{GameID: g.GameID, Field: "winner"}
}

// KnownGameIDs is the coverage index: the set of game ids already stored
// for a period, used to compute the provider fetch delta.
func (s *GameStore) KnownGameIDs(ctx context.Context, period models.Period) (map[string]bool, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT game_id FROM games WHERE season = $1 AND week = $2
	`, period.Season, period.Week)
	if err != nil {
		return nil, fmt.Errorf("known game ids %s: %w", period, err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("known game ids %s: %w", period, err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// Get returns one game by id, or models.ErrNotFound.
func (s *GameStore) Get(ctx context.Context, gameID string) (*models.Game, error) {
	row := s.pg.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE game_id = $1`, gameID)
	g, err := scanGame(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", gameID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}
	return g, nil
}

// ForPeriod returns every game stored for a period, ordered by kickoff.
func (s *GameStore) ForPeriod(ctx context.Context, period models.Period) ([]models.Game, error) {
	return s.queryGames(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE season = $1 AND week = $2
		ORDER BY game_date ASC, game_id ASC
	`, period.Season, period.Week)
}

// Incomplete returns the period's games still lacking a final result.
func (s *GameStore) Incomplete(ctx context.Context, period models.Period) ([]models.Game, error) {
	return s.queryGames(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE season = $1 AND week = $2 AND (winner IS NULL OR winner = '')
		ORDER BY game_date ASC, game_id ASC
	`, period.Season, period.Week)
}

// CompletedForTeam returns a team's completed games with period <= the
// target, in chronological order with ties broken by game id so a replay
// over them is deterministic.
func (s *GameStore) CompletedForTeam(ctx context.Context, team string, period models.Period) ([]models.Game, error) {
	return s.queryGames(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE (home_team = $1 OR away_team = $1)
		  AND winner IS NOT NULL AND winner != ''
		  AND (season < $2 OR (season = $2 AND week <= $3))
		ORDER BY game_date ASC, game_id ASC
	`, team, period.Season, period.Week)
}

func (s *GameStore) queryGames(ctx context.Context, sql string, args ...any) ([]models.Game, error) {
	rows, err := s.pg.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.GameID, &g.Season, &g.Week, &g.GameDate, &g.HomeTeam, &g.AwayTeam,
		&g.HomeScore, &g.AwayScore, &g.Winner, &g.HomeSpread, &g.TotalPoints,
		&g.WeatherTemp, &g.WeatherWind, &g.WeatherConditions, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
