// Package provider fetches game schedules and results from the upstream
// scoreboard feed.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

const regularSeasonType = 2

// scoreboardCacheTTL bounds how often we re-fetch the same period while a
// reconcile pass iterates over its games.
const scoreboardCacheTTL = 30 * time.Second

// Client talks to the ESPN scoreboard API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	cacheKey string
	cached   []models.Game
	cachedAt time.Time
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Sugar(),
	}
}

// scoreboard is the subset of the feed payload we read.
type scoreboard struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string `json:"homeAway"`
			Score    string `json:"score"`
			Team     struct {
				Abbreviation string `json:"abbreviation"`
			} `json:"team"`
		} `json:"competitors"`
		Odds []struct {
			Spread    *float64 `json:"spread"`
			OverUnder *float64 `json:"overUnder"`
		} `json:"odds"`
	} `json:"competitions"`
	Status struct {
		Type struct {
			Completed bool `json:"completed"`
		} `json:"type"`
	} `json:"status"`
}

// ListPeriod returns every game the feed reports for a season week. Results
// are cached briefly so repeated calls within one reconcile pass hit the
// network once.
func (c *Client) ListPeriod(ctx context.Context, period models.Period) ([]models.Game, error) {
	key := period.String()

	c.mu.Lock()
	if c.cacheKey == key && time.Since(c.cachedAt) < scoreboardCacheTTL {
		games := c.cached
		c.mu.Unlock()
		return games, nil
	}
	c.mu.Unlock()

	q := url.Values{}
	q.Set("seasontype", strconv.Itoa(regularSeasonType))
	q.Set("week", strconv.Itoa(period.Week))
	q.Set("dates", strconv.Itoa(period.Season))

	reqURL := fmt.Sprintf("%s/scoreboard?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build scoreboard request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch scoreboard %s: unexpected status %d", key, resp.StatusCode)
	}

	var board scoreboard
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("decode scoreboard %s: %w", key, err)
	}

	games := make([]models.Game, 0, len(board.Events))
	for _, event := range board.Events {
		game, err := parseEvent(event, period)
		if err != nil {
			c.logger.Warnw("Skipping unparseable event", "event_id", event.ID, "error", err)
			continue
		}
		games = append(games, *game)
	}

	c.mu.Lock()
	c.cacheKey = key
	c.cached = games
	c.cachedAt = time.Now()
	c.mu.Unlock()

	c.logger.Infow("Fetched scoreboard", "period", key, "games", len(games))
	return games, nil
}

// FetchGame returns the feed's current view of a single game, or ErrNotFound
// when the period listing does not include it.
func (c *Client) FetchGame(ctx context.Context, gameID string, period models.Period) (*models.Game, error) {
	games, err := c.ListPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].GameID == gameID {
			return &games[i], nil
		}
	}
	return nil, fmt.Errorf("game %s in %s: %w", gameID, period, models.ErrNotFound)
}

func parseEvent(event scoreboardEvent, period models.Period) (*models.Game, error) {
	if len(event.Competitions) == 0 {
		return nil, fmt.Errorf("event has no competitions")
	}
	comp := event.Competitions[0]

	game := models.Game{
		GameID: event.ID,
		Season: period.Season,
		Week:   period.Week,
	}

	if event.Date != "" {
		t, err := time.Parse(time.RFC3339, event.Date)
		if err != nil {
			// The feed sometimes drops seconds from the timestamp.
			t, err = time.Parse("2006-01-02T15:04Z", event.Date)
			if err != nil {
				return nil, fmt.Errorf("parse event date %q: %w", event.Date, err)
			}
		}
		game.GameDate = t
	}

	var homeScore, awayScore *int
	for _, competitor := range comp.Competitors {
		score, scoreErr := strconv.Atoi(competitor.Score)
		if competitor.HomeAway == "home" {
			game.HomeTeam = competitor.Team.Abbreviation
			if scoreErr == nil {
				homeScore = &score
			}
		} else {
			game.AwayTeam = competitor.Team.Abbreviation
			if scoreErr == nil {
				awayScore = &score
			}
		}
	}
	if game.HomeTeam == "" || game.AwayTeam == "" {
		return nil, fmt.Errorf("event missing home or away competitor")
	}

	// Scores and winner are only trusted once the feed marks the game
	// finished; in-progress scores must not look like results.
	if event.Status.Type.Completed && homeScore != nil && awayScore != nil {
		game.HomeScore = homeScore
		game.AwayScore = awayScore
		winner := game.HomeTeam
		if *awayScore > *homeScore {
			winner = game.AwayTeam
		} else if *awayScore == *homeScore {
			winner = "" // tie
		}
		if winner != "" {
			game.Winner = &winner
		}
	}

	for _, odd := range comp.Odds {
		if odd.Spread != nil {
			game.HomeSpread = odd.Spread
		}
		if odd.OverUnder != nil {
			game.TotalPoints = odd.OverUnder
		}
	}

	return &game, nil
}
