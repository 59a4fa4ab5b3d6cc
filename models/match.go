package models

import "time"

// GoalScorer attributes goals (and optionally cards) from one match to a
// player on the scoring side. Entries referencing players no longer on the
// roster are ignored at aggregation time, not rejected at write time.
type GoalScorer struct {
	PlayerID   string `json:"player_id"`
	Goals      int    `json:"goals"`
	YellowCard bool   `json:"yellow_card,omitempty"`
	RedCard    bool   `json:"red_card,omitempty"`
}

// Match is created unplayed by fixture generation and mutated once by result
// recording (re-recording overwrites). Scores and scorer lists are populated
// iff Played is true. HomeTeamID and AwayTeamID are always distinct.
type Match struct {
	ID          string       `json:"id"`
	HomeTeamID  string       `json:"home_team_id"`
	AwayTeamID  string       `json:"away_team_id"`
	HomeScore   *int         `json:"home_score,omitempty"`
	AwayScore   *int         `json:"away_score,omitempty"`
	Played      bool         `json:"played"`
	RecordedAt  *time.Time   `json:"recorded_at,omitempty"`
	HomeScorers []GoalScorer `json:"home_scorers,omitempty"`
	AwayScorers []GoalScorer `json:"away_scorers,omitempty"`
	Round       int          `json:"round"`
	MatchOrder  int          `json:"match_order"`
}

// HasResult reports whether the match counts for standings: played with both
// scores present.
func (m *Match) HasResult() bool {
	return m.Played && m.HomeScore != nil && m.AwayScore != nil
}
