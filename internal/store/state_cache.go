package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// RedisClient defines the subset of redis operations the cache needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// StateCache memoizes assembled team states in Redis. Invalidation bumps a
// per-team version counter instead of scanning keys, so stale entries simply
// stop being addressed and expire on their own.
type StateCache struct {
	rdb    RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewStateCache(rdb RedisClient, ttl time.Duration, logger *zap.Logger) *StateCache {
	return &StateCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.Sugar(),
	}
}

func (c *StateCache) versionKey(team string, season int) string {
	return fmt.Sprintf("team_state_ver:%s:%d", team, season)
}

func (c *StateCache) stateKey(team string, season, week, version int) string {
	return fmt.Sprintf("team_state:%s:%d:%d:v%d", team, season, week, version)
}

func (c *StateCache) currentVersion(ctx context.Context, team string, season int) int {
	ver, err := c.rdb.Get(ctx, c.versionKey(team, season)).Int()
	if err != nil {
		return 0
	}
	return ver
}

// Get returns the cached state for a team at a period, or nil on a miss.
// Cache failures degrade to misses.
func (c *StateCache) Get(ctx context.Context, team string, period models.Period) *models.TeamState {
	ver := c.currentVersion(ctx, team, period.Season)
	raw, err := c.rdb.Get(ctx, c.stateKey(team, period.Season, period.Week, ver)).Bytes()
	if err != nil {
		return nil
	}
	var state models.TeamState
	if err := json.Unmarshal(raw, &state); err != nil {
		c.logger.Warnw("Discarding malformed cached team state", "team", team, "error", err)
		return nil
	}
	return &state
}

// Set stores a computed state under the team's current version.
func (c *StateCache) Set(ctx context.Context, state *models.TeamState) {
	raw, err := json.Marshal(state)
	if err != nil {
		c.logger.Warnw("Failed to marshal team state for cache", "team", state.Team, "error", err)
		return
	}
	ver := c.currentVersion(ctx, state.Team, state.Season)
	key := c.stateKey(state.Team, state.Season, state.Week, ver)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warnw("Failed to cache team state", "team", state.Team, "error", err)
	}
}

// Invalidate drops every cached state for a team in a season by bumping the
// version counter.
func (c *StateCache) Invalidate(ctx context.Context, team string, season int) {
	if err := c.rdb.Incr(ctx, c.versionKey(team, season)).Err(); err != nil {
		c.logger.Warnw("Failed to invalidate team state cache", "team", team, "error", err)
	}
}
