package models

import "time"

// GameOutcome is one completed game from a team's point of view, kept in
// the trailing window and head-to-head memory.
type GameOutcome struct {
	GameID        string `json:"game_id"`
	Opponent      string `json:"opponent"`
	Won           bool   `json:"won"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
}

// TeamState is the derived per-team state as of a period. It is a pure
// function of the team's completed games with period <= the target, folded
// in chronological order (ties broken by game id), so recomputing it from
// the same history always yields the same value.
type TeamState struct {
	Team   string `json:"team"`
	Season int    `json:"season"`
	Week   int    `json:"week"`

	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`

	// Streak is signed: +n for n straight wins, -n for n straight losses.
	Streak int `json:"streak"`

	// Trailing-window scoring averages and the window itself, oldest first.
	PointsAvg        float64       `json:"points_avg"`
	PointsAllowedAvg float64       `json:"points_allowed_avg"`
	Window           []GameOutcome `json:"window,omitempty"`

	// FormScore weights recent results more heavily, in [0,1].
	FormScore float64 `json:"form_score"`

	// HeadToHead keeps the last meetings against each opponent, capped.
	HeadToHead map[string][]GameOutcome `json:"head_to_head,omitempty"`

	LastPlayed time.Time `json:"last_played,omitempty"`
}

// H2HRecord returns (wins, games) against one opponent from memory.
func (s *TeamState) H2HRecord(opponent string) (wins, games int) {
	for _, o := range s.HeadToHead[opponent] {
		games++
		if o.Won {
			wins++
		}
	}
	return wins, games
}
