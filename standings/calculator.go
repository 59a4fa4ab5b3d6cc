// Package standings folds played matches into per-team and per-player
// aggregates and derives the ranking table and top-scorer leaderboard.
// Compute is a pure function of the championship snapshot.
package standings

import (
	"sort"

	"github.com/matchday-app/championship-engine/models"
)

// TeamRow is the per-team aggregate. Position is assigned only on table rows.
type TeamRow struct {
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Position       int    `json:"position,omitempty"`
	Matches        int    `json:"matches"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// PlayerRow is the per-player aggregate.
type PlayerRow struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	TeamID      string `json:"team_id"`
	Matches     int    `json:"matches"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

// Stats holds the raw aggregates keyed by id, plus the input order needed for
// stable derived views.
type Stats struct {
	Teams   map[string]*TeamRow
	Players map[string]*PlayerRow

	teamOrder   []string
	playerOrder []string
}

// Compute aggregates every played match with both scores present. Teams and
// players with no matches still get zeroed rows. Unplayed or partially
// recorded matches are skipped; goal-scorer entries referencing unknown
// players are ignored.
func Compute(champ *models.Championship) *Stats {
	stats := &Stats{
		Teams:   make(map[string]*TeamRow, len(champ.Teams)),
		Players: make(map[string]*PlayerRow),
	}

	for i := range champ.Teams {
		team := &champ.Teams[i]
		stats.Teams[team.ID] = &TeamRow{TeamID: team.ID, TeamName: team.Name}
		stats.teamOrder = append(stats.teamOrder, team.ID)
		for j := range team.Players {
			player := &team.Players[j]
			stats.Players[player.ID] = &PlayerRow{
				PlayerID:   player.ID,
				PlayerName: player.Name,
				TeamID:     team.ID,
			}
			stats.playerOrder = append(stats.playerOrder, player.ID)
		}
	}

	winPoints := champ.Type.WinPoints()
	drawPoints := champ.Type.DrawPoints()

	for i := range champ.Matches {
		match := &champ.Matches[i]
		if !match.HasResult() {
			continue
		}

		home, homeOK := stats.Teams[match.HomeTeamID]
		away, awayOK := stats.Teams[match.AwayTeamID]
		if !homeOK || !awayOK {
			// Match references a team no longer in the championship.
			continue
		}

		homeScore := *match.HomeScore
		awayScore := *match.AwayScore

		home.Matches++
		away.Matches++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Wins++
			home.Points += winPoints
			away.Losses++
		case awayScore > homeScore:
			away.Wins++
			away.Points += winPoints
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points += drawPoints
			away.Points += drawPoints
		}

		// Cumulative, recomputed per fold step.
		home.GoalDifference = home.GoalsFor - home.GoalsAgainst
		away.GoalDifference = away.GoalsFor - away.GoalsAgainst

		stats.foldScorers(match.HomeScorers)
		stats.foldScorers(match.AwayScorers)
	}

	return stats
}

func (s *Stats) foldScorers(scorers []models.GoalScorer) {
	for _, scorer := range scorers {
		row, ok := s.Players[scorer.PlayerID]
		if !ok {
			continue
		}
		row.Matches++
		row.Goals += scorer.Goals
		if scorer.YellowCard {
			row.YellowCards++
		}
		if scorer.RedCard {
			row.RedCards++
		}
	}
}

// Table returns the ranking: descending points, then goal difference, then
// goals for. Residual ties keep team input order; Position is the 1-based
// index after sorting.
func (s *Stats) Table() []TeamRow {
	rows := make([]TeamRow, 0, len(s.teamOrder))
	for _, id := range s.teamOrder {
		rows = append(rows, *s.Teams[id])
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// TopScorers returns up to five players with at least one goal, descending by
// goals, ties keeping roster input order.
func (s *Stats) TopScorers() []PlayerRow {
	rows := make([]PlayerRow, 0)
	for _, id := range s.playerOrder {
		if row := s.Players[id]; row.Goals > 0 {
			rows = append(rows, *row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Goals > rows[j].Goals
	})

	if len(rows) > 5 {
		rows = rows[:5]
	}
	return rows
}

// PlayerRows returns every player aggregate in roster input order.
func (s *Stats) PlayerRows() []PlayerRow {
	rows := make([]PlayerRow, 0, len(s.playerOrder))
	for _, id := range s.playerOrder {
		rows = append(rows, *s.Players[id])
	}
	return rows
}
