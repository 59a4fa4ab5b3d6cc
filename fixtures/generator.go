// Package fixtures generates unplayed matches for a championship, either from
// an explicit pairing list or from a rounds-by-matches-per-team constraint.
package fixtures

import (
	"context"
	"errors"

	"github.com/matchday-app/championship-engine/models"
)

// ErrInsufficientTeams is returned before any generation is attempted when
// fewer than two teams are supplied.
var ErrInsufficientTeams = errors.New("at least 2 teams are required to generate fixtures")

// Pairing is one requested fixture in explicit-pairing mode. Round defaults
// to 1 when zero.
type Pairing struct {
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	Round      int    `json:"round"`
}

// SkippedPairing records a pairing dropped by the best-effort policy, so the
// caller can surface or ignore the drops.
type SkippedPairing struct {
	Pairing Pairing `json:"pairing"`
	Reason  string  `json:"reason"`
}

type GenerateParams struct {
	Teams []models.Team

	// Explicit-pairing mode.
	Pairings []Pairing

	// Configured mode.
	TotalRounds    int
	MatchesPerTeam int
}

// Result carries the generated matches plus any pairings that were dropped.
type Result struct {
	Matches []models.Match   `json:"matches"`
	Skipped []SkippedPairing `json:"skipped,omitempty"`
}

type Generator interface {
	Generate(ctx context.Context, params GenerateParams) (*Result, error)

	Name() string
}
