package models

// FeatureVector is the fixed-shape numeric input every model receives for
// a game. Dimensionality and field order never change across games or
// models; Values and FeatureNames enumerate the fields in their one
// canonical order.
type FeatureVector struct {
	HomeRating float64 `json:"home_rating"`
	AwayRating float64 `json:"away_rating"`
	RatingDiff float64 `json:"rating_diff"`

	HomePointsAvg        float64 `json:"home_points_avg"`
	AwayPointsAvg        float64 `json:"away_points_avg"`
	PointsAvgDiff        float64 `json:"points_avg_diff"`
	HomePointsAllowedAvg float64 `json:"home_points_allowed_avg"`
	AwayPointsAllowedAvg float64 `json:"away_points_allowed_avg"`
	PointsAllowedDiff    float64 `json:"points_allowed_diff"`

	HomeStreak float64 `json:"home_streak"`
	AwayStreak float64 `json:"away_streak"`
	StreakDiff float64 `json:"streak_diff"`

	HomeFormScore float64 `json:"home_form_score"`
	AwayFormScore float64 `json:"away_form_score"`
	FormDiff      float64 `json:"form_diff"`

	HomeWinPct float64 `json:"home_win_pct"`
	AwayWinPct float64 `json:"away_win_pct"`

	H2HHomeWins    float64 `json:"h2h_home_wins"`
	H2HGamesPlayed float64 `json:"h2h_games_played"`
	H2HDominance   float64 `json:"h2h_dominance"`

	HomeRestDays float64 `json:"home_rest_days"`
	AwayRestDays float64 `json:"away_rest_days"`

	TravelDistance float64 `json:"travel_distance"`
	TravelBucket   float64 `json:"travel_bucket"`

	TempNormalized float64 `json:"temp_normalized"`
	TempExtreme    float64 `json:"temp_extreme"`
	WindNormalized float64 `json:"wind_normalized"`
	WindStrong     float64 `json:"wind_strong"`
	BadWeather     float64 `json:"bad_weather"`
	HomeDome       float64 `json:"home_dome"`

	SpreadValue  float64 `json:"spread_value"`
	PickEm       float64 `json:"pick_em"`
	DivisionGame float64 `json:"division_game"`
}

// FeatureCount is the fixed dimensionality of every FeatureVector.
const FeatureCount = 33

// Values returns the vector in canonical order.
func (fv FeatureVector) Values() []float64 {
	return []float64{
		fv.HomeRating, fv.AwayRating, fv.RatingDiff,
		fv.HomePointsAvg, fv.AwayPointsAvg, fv.PointsAvgDiff,
		fv.HomePointsAllowedAvg, fv.AwayPointsAllowedAvg, fv.PointsAllowedDiff,
		fv.HomeStreak, fv.AwayStreak, fv.StreakDiff,
		fv.HomeFormScore, fv.AwayFormScore, fv.FormDiff,
		fv.HomeWinPct, fv.AwayWinPct,
		fv.H2HHomeWins, fv.H2HGamesPlayed, fv.H2HDominance,
		fv.HomeRestDays, fv.AwayRestDays,
		fv.TravelDistance, fv.TravelBucket,
		fv.TempNormalized, fv.TempExtreme,
		fv.WindNormalized, fv.WindStrong,
		fv.BadWeather, fv.HomeDome,
		fv.SpreadValue, fv.PickEm, fv.DivisionGame,
	}
}

// FeatureNames returns the canonical field names, index-aligned with Values.
func FeatureNames() []string {
	return []string{
		"home_rating", "away_rating", "rating_diff",
		"home_points_avg", "away_points_avg", "points_avg_diff",
		"home_points_allowed_avg", "away_points_allowed_avg", "points_allowed_diff",
		"home_streak", "away_streak", "streak_diff",
		"home_form_score", "away_form_score", "form_diff",
		"home_win_pct", "away_win_pct",
		"h2h_home_wins", "h2h_games_played", "h2h_dominance",
		"home_rest_days", "away_rest_days",
		"travel_distance", "travel_bucket",
		"temp_normalized", "temp_extreme",
		"wind_normalized", "wind_strong",
		"bad_weather", "home_dome",
		"spread_value", "pick_em", "division_game",
	}
}
