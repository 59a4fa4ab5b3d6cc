package services

import (
	"context"

	"github.com/matchday-app/championship-engine/repositories"
	"github.com/matchday-app/championship-engine/standings"
)

// StandingsService derives the ranking view from the persisted championship.
// The computation is pure, so the view always reflects the stored aggregate.
type StandingsService interface {
	GetStandings(ctx context.Context, userID, championshipID string) (*StandingsView, error)
}

type StandingsView struct {
	Table      []standings.TeamRow   `json:"table"`
	TopScorers []standings.PlayerRow `json:"top_scorers"`
	Players    []standings.PlayerRow `json:"players"`
}

type standingsService struct {
	champRepo repositories.ChampionshipRepository
}

func NewStandingsService(champRepo repositories.ChampionshipRepository) StandingsService {
	return &standingsService{champRepo: champRepo}
}

func (s *standingsService) GetStandings(ctx context.Context, userID, championshipID string) (*StandingsView, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}

	stats := standings.Compute(champ)
	return &StandingsView{
		Table:      stats.Table(),
		TopScorers: stats.TopScorers(),
		Players:    stats.PlayerRows(),
	}, nil
}
