package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/matchday-app/championship-engine/models"
)

// ManualGenerator turns an explicit pairing list into unplayed matches.
// Malformed pairings (unknown team id, a team paired against itself) are
// dropped, not rejected: the caller gets the survivors plus the drop reasons.
type ManualGenerator struct {
	logger *slog.Logger
}

func NewManualGenerator(logger *slog.Logger) Generator {
	return &ManualGenerator{logger: logger}
}

func (g *ManualGenerator) Name() string {
	return "Manual"
}

func (g *ManualGenerator) Generate(ctx context.Context, params GenerateParams) (*Result, error) {
	if len(params.Teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrInsufficientTeams, len(params.Teams))
	}

	known := make(map[string]bool, len(params.Teams))
	for _, team := range params.Teams {
		known[team.ID] = true
	}

	result := &Result{
		Matches: make([]models.Match, 0, len(params.Pairings)),
		Skipped: make([]SkippedPairing, 0),
	}

	for _, pairing := range params.Pairings {
		reason := ""
		switch {
		case !known[pairing.HomeTeamID]:
			reason = fmt.Sprintf("unknown home team %q", pairing.HomeTeamID)
		case !known[pairing.AwayTeamID]:
			reason = fmt.Sprintf("unknown away team %q", pairing.AwayTeamID)
		case pairing.HomeTeamID == pairing.AwayTeamID:
			reason = "team paired against itself"
		}
		if reason != "" {
			g.logger.Warn("skipping fixture pairing",
				slog.String("home_team_id", pairing.HomeTeamID),
				slog.String("away_team_id", pairing.AwayTeamID),
				slog.String("reason", reason))
			result.Skipped = append(result.Skipped, SkippedPairing{Pairing: pairing, Reason: reason})
			continue
		}

		round := pairing.Round
		if round == 0 {
			round = 1
		}

		// Position surrogate within the generation batch.
		order := (len(result.Matches) % 10) + 1

		result.Matches = append(result.Matches, models.Match{
			ID:         uuid.NewString(),
			HomeTeamID: pairing.HomeTeamID,
			AwayTeamID: pairing.AwayTeamID,
			Round:      round,
			MatchOrder: order,
		})
	}

	return result, nil
}
