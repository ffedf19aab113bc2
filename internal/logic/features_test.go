package logic

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// fixedStates serves pre-built states without touching a store.
type fixedStates struct {
	states map[string]*models.TeamState
}

func (f *fixedStates) StateAt(ctx context.Context, team string, period models.Period) (*models.TeamState, error) {
	if s, ok := f.states[team]; ok {
		return s, nil
	}
	return &models.TeamState{
		Team: team, Season: period.Season, Week: period.Week,
		Rating: 1500, PointsAvg: 20, PointsAllowedAvg: 20, FormScore: 0.5,
		HeadToHead: map[string][]models.GameOutcome{},
	}, nil
}

func TestAssembleShape(t *testing.T) {
	svc := NewFeatureService(&fixedStates{}, zap.NewNop())
	game := pendingGame("g1", "KC", "BAL")

	fv, err := svc.Assemble(context.Background(), &game)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	values := fv.Values()
	names := models.FeatureNames()
	if len(values) != models.FeatureCount {
		t.Errorf("Values() length = %d, want %d", len(values), models.FeatureCount)
	}
	if len(names) != models.FeatureCount {
		t.Errorf("FeatureNames() length = %d, want %d", len(names), models.FeatureCount)
	}
}

func TestAssembleNeutralDefaults(t *testing.T) {
	svc := NewFeatureService(&fixedStates{}, zap.NewNop())
	// No weather, no spread, no prior games for either team.
	game := pendingGame("g1", "CLE", "PIT")

	fv, err := svc.Assemble(context.Background(), &game)
	if err != nil {
		t.Fatalf("Assemble must not fail on missing context: %v", err)
	}

	if fv.HomeRestDays != 7 || fv.AwayRestDays != 7 {
		t.Errorf("rest days = %v/%v, want neutral 7", fv.HomeRestDays, fv.AwayRestDays)
	}
	if fv.TempNormalized != 0.65 {
		t.Errorf("TempNormalized = %v, want 0.65", fv.TempNormalized)
	}
	if fv.WindNormalized != 5.0/30.0 {
		t.Errorf("WindNormalized = %v, want %v", fv.WindNormalized, 5.0/30.0)
	}
	if fv.TempExtreme != 0 || fv.WindStrong != 0 || fv.BadWeather != 0 {
		t.Errorf("weather flags = %v/%v/%v, want all zero", fv.TempExtreme, fv.WindStrong, fv.BadWeather)
	}
	if fv.PickEm != 1 || fv.SpreadValue != 0 {
		t.Errorf("no posted line must encode as pick'em: pick_em=%v spread=%v", fv.PickEm, fv.SpreadValue)
	}
	if fv.HomeWinPct != 0.5 || fv.AwayWinPct != 0.5 {
		t.Errorf("win pct = %v/%v, want neutral 0.5", fv.HomeWinPct, fv.AwayWinPct)
	}
	if fv.H2HGamesPlayed != 0 || fv.H2HDominance != 0 {
		t.Errorf("h2h = %v games dominance %v, want zero", fv.H2HGamesPlayed, fv.H2HDominance)
	}
}

func TestAssembleDifferentials(t *testing.T) {
	states := &fixedStates{states: map[string]*models.TeamState{
		"KC": {
			Team: "KC", Season: 2025, Week: 5,
			Rating: 1620, PointsAvg: 27, PointsAllowedAvg: 18,
			Streak: 3, FormScore: 0.8, Wins: 4, Losses: 0,
			HeadToHead: map[string][]models.GameOutcome{
				"BAL": {{Won: true}, {Won: true}, {Won: false}, {Won: true}},
			},
			LastPlayed: time.Date(2025, 9, 28, 17, 0, 0, 0, time.UTC),
		},
		"BAL": {
			Team: "BAL", Season: 2025, Week: 5,
			Rating: 1560, PointsAvg: 24, PointsAllowedAvg: 21,
			Streak: -1, FormScore: 0.6, Wins: 3, Losses: 1,
			HeadToHead: map[string][]models.GameOutcome{},
			LastPlayed: time.Date(2025, 9, 25, 17, 0, 0, 0, time.UTC),
		},
	}}

	svc := NewFeatureService(states, zap.NewNop())
	game := pendingGame("g1", "KC", "BAL")
	game.HomeSpread = floatPtr(-3.5)

	fv, err := svc.Assemble(context.Background(), &game)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if fv.RatingDiff != 60 {
		t.Errorf("RatingDiff = %v, want 60", fv.RatingDiff)
	}
	if fv.PointsAvgDiff != 3 {
		t.Errorf("PointsAvgDiff = %v, want 3", fv.PointsAvgDiff)
	}
	if fv.StreakDiff != 4 {
		t.Errorf("StreakDiff = %v, want 4", fv.StreakDiff)
	}
	if fv.HomeWinPct != 1.0 {
		t.Errorf("HomeWinPct = %v, want 1.0", fv.HomeWinPct)
	}
	if fv.H2HHomeWins != 3 || fv.H2HGamesPlayed != 4 || fv.H2HDominance != 0.25 {
		t.Errorf("h2h = %v/%v/%v, want 3/4/0.25", fv.H2HHomeWins, fv.H2HGamesPlayed, fv.H2HDominance)
	}
	if fv.SpreadValue != -3.5 || fv.PickEm != 0 {
		t.Errorf("spread encoding = %v pick_em=%v, want -3.5/0", fv.SpreadValue, fv.PickEm)
	}
	if fv.HomeRestDays != 7 || fv.AwayRestDays != 10 {
		t.Errorf("rest days = %v/%v, want 7/10", fv.HomeRestDays, fv.AwayRestDays)
	}
	if fv.TravelDistance <= 0 {
		t.Errorf("TravelDistance = %v, want positive for KC vs BAL", fv.TravelDistance)
	}
	if fv.DivisionGame != 0 {
		t.Errorf("KC vs BAL is not a division game")
	}
}

func TestAssembleWeatherAndVenue(t *testing.T) {
	svc := NewFeatureService(&fixedStates{}, zap.NewNop())

	game := pendingGame("g1", "GB", "CHI")
	game.WeatherTemp = floatPtr(20)
	game.WeatherWind = floatPtr(22)
	game.WeatherConditions = strPtr("Heavy Snow")

	fv, err := svc.Assemble(context.Background(), &game)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if fv.TempExtreme != 1 {
		t.Errorf("20F must flag TempExtreme")
	}
	if fv.WindStrong != 1 {
		t.Errorf("22mph must flag WindStrong")
	}
	if fv.BadWeather != 1 {
		t.Errorf("snow must flag BadWeather")
	}
	if fv.DivisionGame != 1 {
		t.Errorf("GB vs CHI is a division game")
	}
	if fv.HomeDome != 0 {
		t.Errorf("GB plays outdoors")
	}

	// A dome neutralizes any forecast.
	domeGame := pendingGame("g2", "MIN", "GB")
	domeGame.WeatherTemp = floatPtr(10)
	domeGame.WeatherWind = floatPtr(25)
	domeGame.WeatherConditions = strPtr("Blizzard storm")

	fv, err = svc.Assemble(context.Background(), &domeGame)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if fv.HomeDome != 1 {
		t.Errorf("MIN home game must flag HomeDome")
	}
	if fv.TempExtreme != 0 || fv.WindStrong != 0 || fv.BadWeather != 0 {
		t.Errorf("dome game weather flags = %v/%v/%v, want all zero",
			fv.TempExtreme, fv.WindStrong, fv.BadWeather)
	}
}

func TestTravelBuckets(t *testing.T) {
	tests := []struct {
		home, away string
		wantBucket float64
	}{
		{"NYG", "NYJ", 0}, // shared stadium
		{"GB", "CHI", 0},
		{"KC", "DAL", 1},
		{"SEA", "MIA", 2},
	}
	for _, tt := range tests {
		d := travelDistance(tt.home, tt.away)
		if got := travelBucket(d); got != tt.wantBucket {
			t.Errorf("travelBucket(%s vs %s, %.0f miles) = %v, want %v",
				tt.home, tt.away, d, got, tt.wantBucket)
		}
	}

	if d := travelDistance("KC", "XXX"); d != 0 {
		t.Errorf("unknown team distance = %v, want neutral 0", d)
	}
}
