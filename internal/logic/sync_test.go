package logic

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func pendingGame(id, home, away string) models.Game {
	return models.Game{
		GameID:   id,
		Season:   2025,
		Week:     5,
		GameDate: time.Date(2025, 10, 5, 17, 0, 0, 0, time.UTC),
		HomeTeam: home,
		AwayTeam: away,
	}
}

func completedGame(id, home, away string, homeScore, awayScore int) models.Game {
	g := pendingGame(id, home, away)
	g.HomeScore = intPtr(homeScore)
	g.AwayScore = intPtr(awayScore)
	winner := home
	if awayScore > homeScore {
		winner = away
	}
	g.Winner = strPtr(winner)
	return g
}

func TestReconcileAddsOnlyUnknownGames(t *testing.T) {
	period := models.Period{Season: 2025, Week: 5}

	listing := []models.Game{
		pendingGame("g1", "KC", "BAL"),
		pendingGame("g2", "BUF", "NYJ"),
		pendingGame("g3", "SF", "SEA"),
		pendingGame("g4", "DAL", "PHI"),
		pendingGame("g5", "GB", "MIN"),
		pendingGame("g6", "MIA", "NE"),
		pendingGame("g7", "DET", "CHI"),
		pendingGame("g8", "ATL", "NO"),
		pendingGame("g9", "DEN", "LV"),
		pendingGame("g10", "HOU", "IND"),
	}
	known := map[string]bool{
		"g1": true, "g2": true, "g3": true, "g4": true,
		"g5": true, "g6": true, "g7": true,
	}

	var inserts int64
	games := &MockGameStore{
		KnownGameIDsFunc: func(ctx context.Context, p models.Period) (map[string]bool, error) {
			return known, nil
		},
		InsertFunc: func(ctx context.Context, game *models.Game) (bool, error) {
			atomic.AddInt64(&inserts, 1)
			if known[game.GameID] {
				t.Errorf("inserted already-known game %s", game.GameID)
			}
			return true, nil
		},
	}
	provider := &MockProvider{
		ListPeriodFunc: func(ctx context.Context, p models.Period) ([]models.Game, error) {
			return listing, nil
		},
	}

	svc := NewSyncService(games, &MockPredictionStore{}, provider, nil, zap.NewNop())
	result, err := svc.Reconcile(context.Background(), period)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if result.Added != 3 {
		t.Errorf("Added = %d, want 3", result.Added)
	}
	if result.Skipped != 7 {
		t.Errorf("Skipped = %d, want 7", result.Skipped)
	}
	if len(result.Failed) != 0 {
		t.Errorf("Failed = %v, want empty", result.Failed)
	}
	if inserts != 3 {
		t.Errorf("insert calls = %d, want 3", inserts)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	period := models.Period{Season: 2025, Week: 5}
	listing := []models.Game{
		completedGame("g1", "KC", "BAL", 27, 20),
		completedGame("g2", "BUF", "NYJ", 17, 24),
	}

	var writes int64
	games := &MockGameStore{
		KnownGameIDsFunc: func(ctx context.Context, p models.Period) (map[string]bool, error) {
			return map[string]bool{"g1": true, "g2": true}, nil
		},
		InsertFunc: func(ctx context.Context, game *models.Game) (bool, error) {
			atomic.AddInt64(&writes, 1)
			return true, nil
		},
		PatchResultFunc: func(ctx context.Context, game *models.Game) error {
			atomic.AddInt64(&writes, 1)
			return nil
		},
		// Both games already carry results, so nothing is pending.
		IncompleteFunc: func(ctx context.Context, p models.Period) ([]models.Game, error) {
			return nil, nil
		},
	}
	provider := &MockProvider{
		ListPeriodFunc: func(ctx context.Context, p models.Period) ([]models.Game, error) {
			return listing, nil
		},
	}

	svc := NewSyncService(games, &MockPredictionStore{}, provider, nil, zap.NewNop())
	result, err := svc.Reconcile(context.Background(), period)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if writes != 0 {
		t.Errorf("already-synced period performed %d writes, want 0", writes)
	}
	if result.Added != 0 || result.Updated != 0 || result.Skipped != 2 {
		t.Errorf("result = %+v, want 0 added, 0 updated, 2 skipped", result)
	}
}

func TestReconcileIsolatesFailures(t *testing.T) {
	period := models.Period{Season: 2025, Week: 5}
	listing := []models.Game{
		pendingGame("bad", "KC", "BAL"),
		pendingGame("good", "BUF", "NYJ"),
	}

	games := &MockGameStore{
		InsertFunc: func(ctx context.Context, game *models.Game) (bool, error) {
			if game.GameID == "bad" {
				return false, errors.New("connection reset")
			}
			return true, nil
		},
	}
	provider := &MockProvider{
		ListPeriodFunc: func(ctx context.Context, p models.Period) ([]models.Game, error) {
			return listing, nil
		},
	}

	svc := NewSyncService(games, &MockPredictionStore{}, provider, nil, zap.NewNop())
	result, err := svc.Reconcile(context.Background(), period)
	if err != nil {
		t.Fatalf("Reconcile must not abort on a per-game failure: %v", err)
	}
	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "bad" {
		t.Errorf("Failed = %v, want [bad]", result.Failed)
	}
}

func TestReconcilePatchesCompletionsAndInvalidates(t *testing.T) {
	period := models.Period{Season: 2025, Week: 5}
	stored := pendingGame("g1", "KC", "BAL")
	fresh := completedGame("g1", "KC", "BAL", 27, 20)

	var patched *models.Game
	games := &MockGameStore{
		KnownGameIDsFunc: func(ctx context.Context, p models.Period) (map[string]bool, error) {
			return map[string]bool{"g1": true}, nil
		},
		IncompleteFunc: func(ctx context.Context, p models.Period) ([]models.Game, error) {
			return []models.Game{stored}, nil
		},
		PatchResultFunc: func(ctx context.Context, game *models.Game) error {
			patched = game
			return nil
		},
	}
	provider := &MockProvider{
		ListPeriodFunc: func(ctx context.Context, p models.Period) ([]models.Game, error) {
			return []models.Game{fresh}, nil
		},
		FetchGameFunc: func(ctx context.Context, gameID string, p models.Period) (*models.Game, error) {
			return &fresh, nil
		},
	}

	var settledGame, settledWinner string
	predictions := &MockPredictionStore{
		SettleFunc: func(ctx context.Context, gameID, winner string) (int64, error) {
			settledGame, settledWinner = gameID, winner
			return 2, nil
		},
	}
	cache := &MockStateCache{}

	svc := NewSyncService(games, predictions, provider, cache, zap.NewNop())
	result, err := svc.Reconcile(context.Background(), period)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if result.Updated != 1 {
		t.Errorf("Updated = %d, want 1", result.Updated)
	}
	if patched == nil || patched.Winner == nil || *patched.Winner != "KC" {
		t.Errorf("patched game = %+v, want KC winner", patched)
	}
	if settledGame != "g1" || settledWinner != "KC" {
		t.Errorf("settled %s/%s, want g1/KC", settledGame, settledWinner)
	}
	if len(cache.Invalidated) != 2 {
		t.Fatalf("invalidated %v, want both teams", cache.Invalidated)
	}
	for _, team := range []string{"KC", "BAL"} {
		found := false
		for _, got := range cache.Invalidated {
			if got == team {
				found = true
			}
		}
		if !found {
			t.Errorf("state cache for %s not invalidated", team)
		}
	}
}
