package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/matchday-app/championship-engine/fixtures"
	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/repositories"
)

const (
	GenerationModeManual     = "manual"
	GenerationModeConfigured = "configured"
)

// ScheduleService runs fixture generation against a championship. Generated
// matches are appended to the existing match collection — a later generation
// call never discards earlier fixtures or their recorded results.
type ScheduleService interface {
	GenerateFixtures(ctx context.Context, userID, championshipID string, input GenerateFixturesInput) (*GenerateFixturesOutput, error)
}

type GenerateFixturesInput struct {
	Mode           string             `json:"mode"`
	Pairings       []fixtures.Pairing `json:"pairings,omitempty"`
	TotalRounds    int                `json:"total_rounds,omitempty"`
	MatchesPerTeam int                `json:"matches_per_team,omitempty"`
}

type GenerateFixturesOutput struct {
	Championship *models.Championship      `json:"championship"`
	Generated    []models.Match            `json:"generated"`
	Skipped      []fixtures.SkippedPairing `json:"skipped,omitempty"`
}

type scheduleService struct {
	champRepo repositories.ChampionshipRepository
	hub       *fixtures.Hub
	logger    *slog.Logger
}

func NewScheduleService(champRepo repositories.ChampionshipRepository, hub *fixtures.Hub, logger *slog.Logger) ScheduleService {
	return &scheduleService{champRepo: champRepo, hub: hub, logger: logger}
}

func (s *scheduleService) GenerateFixtures(ctx context.Context, userID, championshipID string, input GenerateFixturesInput) (*GenerateFixturesOutput, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	if champ.Status == models.StatusFinished {
		return nil, ErrFinishedIsImmutable
	}
	if len(champ.Teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", fixtures.ErrInsufficientTeams, len(champ.Teams))
	}

	params := fixtures.GenerateParams{
		Teams:          champ.Teams,
		Pairings:       input.Pairings,
		TotalRounds:    input.TotalRounds,
		MatchesPerTeam: input.MatchesPerTeam,
	}

	var generator fixtures.Generator
	switch input.Mode {
	case GenerationModeManual:
		generator = fixtures.NewManualGenerator(s.logger)
	case GenerationModeConfigured:
		if input.TotalRounds < 1 {
			return nil, ErrInvalidTotalRounds
		}
		if input.MatchesPerTeam < 1 {
			return nil, ErrInvalidMatchesPerTeam
		}
		if max := (len(champ.Teams) - 1) * input.TotalRounds; input.MatchesPerTeam > max {
			return nil, fmt.Errorf("%w (max %d)", ErrMatchesPerTeamTooHigh, max)
		}
		generator = fixtures.NewConfiguredGenerator(s.logger)
	default:
		return nil, fmt.Errorf("unsupported generation mode %q", input.Mode)
	}

	result, err := generator.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fixture generation failed for championship %s: %w", championshipID, err)
	}

	// Append, never replace: incremental schedule growth keeps prior results.
	champ.Matches = append(champ.Matches, result.Matches...)
	if champ.Status == models.StatusCreated {
		champ.Status = models.StatusInProgress
	}
	champ.LastGeneration = &models.GenerationConfig{
		Mode:           input.Mode,
		TotalRounds:    input.TotalRounds,
		MatchesPerTeam: input.MatchesPerTeam,
		RecordedAt:     time.Now().UTC(),
	}

	updated, err := s.champRepo.Update(ctx, userID, champ, true)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(championshipID, fixtures.Message{
		Type: fixtures.EventFixturesGenerated,
		Payload: map[string]interface{}{
			"generated": len(result.Matches),
			"skipped":   len(result.Skipped),
		},
	})

	return &GenerateFixturesOutput{
		Championship: updated,
		Generated:    result.Matches,
		Skipped:      result.Skipped,
	}, nil
}
