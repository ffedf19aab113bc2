package models

import (
	"fmt"
	"time"
)

// Period identifies a batch of games as a (season, week) pair. Regular
// season weeks run 1-18, playoff rounds 19-22.
type Period struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}

func (p Period) String() string {
	return fmt.Sprintf("%d-wk%02d", p.Season, p.Week)
}

// Compare orders periods chronologically: negative when p precedes o.
func (p Period) Compare(o Period) int {
	if p.Season != o.Season {
		return p.Season - o.Season
	}
	return p.Week - o.Week
}

// Game is the durable record of one scheduled contest. Identity and
// participants are immutable after insert; scores and winner transition
// once from unset to set when the provider reports a final.
type Game struct {
	GameID   string    `json:"game_id"`
	Season   int       `json:"season"`
	Week     int       `json:"week"`
	GameDate time.Time `json:"game_date"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`

	HomeScore *int    `json:"home_score,omitempty"`
	AwayScore *int    `json:"away_score,omitempty"`
	Winner    *string `json:"winner,omitempty"`

	// Market and weather context, nullable until known.
	HomeSpread        *float64 `json:"home_spread,omitempty"`
	TotalPoints       *float64 `json:"total_points,omitempty"`
	WeatherTemp       *float64 `json:"weather_temp,omitempty"`
	WeatherWind       *float64 `json:"weather_wind,omitempty"`
	WeatherConditions *string  `json:"weather_conditions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Game) Period() Period {
	return Period{Season: g.Season, Week: g.Week}
}

func (g *Game) Completed() bool {
	return g.Winner != nil && *g.Winner != ""
}

// Involves reports whether team played in this game.
func (g *Game) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// GameSummary is the minimal listing entry returned by the provider's
// period query, enough to compute a fetch delta.
type GameSummary struct {
	GameID   string    `json:"game_id"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	GameDate time.Time `json:"game_date"`
}

// SyncResult summarizes one reconcile pass over a period.
type SyncResult struct {
	Period  Period   `json:"period"`
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  []string `json:"failed,omitempty"`
}
