package models

import "time"

// EnsembleModelName is the reserved model name under which the fused
// prediction row is stored. No registered classifier may use it.
const EnsembleModelName = "ensemble"

// Prediction is one model's (or the ensemble's) pick for a game. At most
// one row exists per (game id, model name). ActualWinner and Correct stay
// unset until the game completes and the settle sweep fills them in.
type Prediction struct {
	GameID          string    `json:"game_id"`
	ModelName       string    `json:"model_name"`
	PredictedWinner string    `json:"predicted_winner"`
	WinProbability  float64   `json:"win_probability"`
	Confidence      string    `json:"confidence"`
	PredictedAt     time.Time `json:"predicted_at"`

	ActualWinner *string `json:"actual_winner,omitempty"`
	Correct      *bool   `json:"correct,omitempty"`
}

// PeriodPrediction is a prediction joined with its game row, the shape
// served to API consumers for a week's slate.
type PeriodPrediction struct {
	Prediction
	Season            int       `json:"season"`
	Week              int       `json:"week"`
	GameDate          time.Time `json:"game_date"`
	HomeTeam          string    `json:"home_team"`
	AwayTeam          string    `json:"away_team"`
	HomeScore         *int      `json:"home_score,omitempty"`
	AwayScore         *int      `json:"away_score,omitempty"`
	HomeSpread        *float64  `json:"home_spread,omitempty"`
	TotalPoints       *float64  `json:"total_points,omitempty"`
	WeatherConditions *string   `json:"weather_conditions,omitempty"`
}
