package services

import (
	"context"
	"time"

	"github.com/matchday-app/championship-engine/fixtures"
	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/repositories"
	"github.com/matchday-app/championship-engine/standings"
)

// MatchService records results. Recording is idempotent: re-recording a match
// overwrites its previous scores and scorer lists without growing the match
// collection.
type MatchService interface {
	RecordResult(ctx context.Context, userID, championshipID, matchID string, input RecordResultInput) (*models.Championship, error)
	ListMatches(ctx context.Context, userID, championshipID string) ([]models.Match, error)
}

type RecordResultInput struct {
	HomeScore   *int                `json:"home_score"`
	AwayScore   *int                `json:"away_score"`
	HomeScorers []models.GoalScorer `json:"home_scorers,omitempty"`
	AwayScorers []models.GoalScorer `json:"away_scorers,omitempty"`
}

type matchService struct {
	champRepo repositories.ChampionshipRepository
	hub       *fixtures.Hub
}

func NewMatchService(champRepo repositories.ChampionshipRepository, hub *fixtures.Hub) MatchService {
	return &matchService{champRepo: champRepo, hub: hub}
}

func (s *matchService) RecordResult(ctx context.Context, userID, championshipID, matchID string, input RecordResultInput) (*models.Championship, error) {
	if input.HomeScore == nil || input.AwayScore == nil {
		return nil, ErrScoresRequired
	}
	if *input.HomeScore < 0 || *input.AwayScore < 0 {
		return nil, ErrNegativeScore
	}

	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	if champ.Status == models.StatusFinished {
		return nil, ErrFinishedIsImmutable
	}

	match := champ.MatchByID(matchID)
	if match == nil {
		return nil, ErrMatchNotFound
	}

	now := time.Now().UTC()
	match.HomeScore = input.HomeScore
	match.AwayScore = input.AwayScore
	match.Played = true
	match.RecordedAt = &now
	match.HomeScorers = input.HomeScorers
	match.AwayScorers = input.AwayScorers
	if match.HomeScorers == nil {
		match.HomeScorers = []models.GoalScorer{}
	}
	if match.AwayScorers == nil {
		match.AwayScorers = []models.GoalScorer{}
	}

	// Card counters on the roster mirror the full match history. Recomputing
	// from scratch keeps re-recording idempotent.
	syncPlayerCards(champ)

	updated, err := s.champRepo.Update(ctx, userID, champ, true)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(championshipID, fixtures.Message{
		Type: fixtures.EventResultRecorded,
		Payload: map[string]interface{}{
			"match_id":   matchID,
			"home_score": *input.HomeScore,
			"away_score": *input.AwayScore,
		},
	})
	s.hub.BroadcastToRoom(championshipID, fixtures.Message{
		Type:    fixtures.EventStandingsUpdated,
		Payload: standings.Compute(updated).Table(),
	})

	return updated, nil
}

func (s *matchService) ListMatches(ctx context.Context, userID, championshipID string) ([]models.Match, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	return champ.Matches, nil
}

func syncPlayerCards(champ *models.Championship) {
	stats := standings.Compute(champ)
	for i := range champ.Teams {
		team := &champ.Teams[i]
		for j := range team.Players {
			player := &team.Players[j]
			if row, ok := stats.Players[player.ID]; ok {
				player.YellowCards = row.YellowCards
				player.RedCards = row.RedCards
			}
		}
	}
}
