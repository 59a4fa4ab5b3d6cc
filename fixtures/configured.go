package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/matchday-app/championship-engine/models"
)

// ConfiguredGenerator builds a schedule from a rounds-by-matches-per-team
// constraint. It is a greedy heuristic, not an optimal balanced scheduler:
// the contract is "respect the caps, maximize coverage". Shortfalls are
// expected when matchesPerTeam does not divide evenly across rounds.
type ConfiguredGenerator struct {
	logger *slog.Logger
}

func NewConfiguredGenerator(logger *slog.Logger) Generator {
	return &ConfiguredGenerator{logger: logger}
}

func (g *ConfiguredGenerator) Name() string {
	return "Configured"
}

func (g *ConfiguredGenerator) Generate(ctx context.Context, params GenerateParams) (*Result, error) {
	teams := params.Teams
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrInsufficientTeams, len(teams))
	}
	if params.TotalRounds < 1 {
		return nil, fmt.Errorf("total rounds must be at least 1, got %d", params.TotalRounds)
	}
	if params.MatchesPerTeam < 1 {
		return nil, fmt.Errorf("matches per team must be at least 1, got %d", params.MatchesPerTeam)
	}

	matchesPerRound := (params.MatchesPerTeam + params.TotalRounds - 1) / params.TotalRounds

	generated := make([]models.Match, 0)
	for round := 1; round <= params.TotalRounds; round++ {
		pairedInRound := make(map[string]bool)
		countInRound := make(map[string]int, len(teams))
		orderInRound := 0

		for i := range teams {
			home := teams[i].ID
			for j := range teams {
				if countInRound[home] >= matchesPerRound {
					break
				}
				away := teams[j].ID
				if away == home || pairedInRound[pairKey(home, away)] {
					continue
				}

				pairedInRound[pairKey(home, away)] = true
				countInRound[home]++
				countInRound[away]++
				orderInRound++

				generated = append(generated, models.Match{
					ID:         uuid.NewString(),
					HomeTeamID: home,
					AwayTeamID: away,
					Round:      round,
					MatchOrder: orderInRound,
				})
			}
		}
	}

	// Second pass: cap each team's total across all rounds at MatchesPerTeam,
	// dropping matches in generation order that would push a participant over.
	totals := make(map[string]int, len(teams))
	kept := make([]models.Match, 0, len(generated))
	dropped := 0
	for _, match := range generated {
		if totals[match.HomeTeamID] >= params.MatchesPerTeam ||
			totals[match.AwayTeamID] >= params.MatchesPerTeam {
			dropped++
			continue
		}
		totals[match.HomeTeamID]++
		totals[match.AwayTeamID]++
		kept = append(kept, match)
	}
	if dropped > 0 {
		g.logger.Debug("configured generation dropped over-cap matches",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(kept)))
	}

	return &Result{Matches: kept, Skipped: []SkippedPairing{}}, nil
}

// pairKey builds an order-independent key for a team pair.
func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}
