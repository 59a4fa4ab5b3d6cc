package services

import (
	"context"
	"strings"
	"time"

	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/repositories"
)

type ChampionshipService interface {
	Create(ctx context.Context, userID string, input CreateChampionshipInput) (*models.Championship, error)
	GetByID(ctx context.Context, userID, id string) (*models.Championship, error)
	List(ctx context.Context, userID string) ([]models.Championship, error)
	Delete(ctx context.Context, userID, id string) error

	SetCurrent(ctx context.Context, userID, id string) error
	GetCurrent(ctx context.Context, userID string) (*models.Championship, error)

	Finish(ctx context.Context, userID, id string) (*models.Championship, error)
	Pause(ctx context.Context, userID, id string) (*models.Championship, error)
	Resume(ctx context.Context, userID, id string) (*models.Championship, error)
}

type CreateChampionshipInput struct {
	Name string                  `json:"name"`
	Type models.ChampionshipType `json:"type"`
}

type championshipService struct {
	champRepo repositories.ChampionshipRepository
}

func NewChampionshipService(champRepo repositories.ChampionshipRepository) ChampionshipService {
	return &championshipService{champRepo: champRepo}
}

func (s *championshipService) Create(ctx context.Context, userID string, input CreateChampionshipInput) (*models.Championship, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrChampionshipNameRequired
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidChampionshipType
	}
	return s.champRepo.Create(ctx, userID, name, input.Type)
}

func (s *championshipService) GetByID(ctx context.Context, userID, id string) (*models.Championship, error) {
	return s.champRepo.GetByID(ctx, userID, id)
}

func (s *championshipService) List(ctx context.Context, userID string) ([]models.Championship, error) {
	return s.champRepo.List(ctx, userID)
}

func (s *championshipService) Delete(ctx context.Context, userID, id string) error {
	return s.champRepo.Delete(ctx, userID, id)
}

func (s *championshipService) SetCurrent(ctx context.Context, userID, id string) error {
	return s.champRepo.SetCurrent(ctx, userID, id)
}

func (s *championshipService) GetCurrent(ctx context.Context, userID string) (*models.Championship, error) {
	return s.champRepo.GetCurrent(ctx, userID)
}

// Finish ends a championship for competitive purposes. The transition is
// irreversible: only pause/resume move a championship between the remaining
// states, and both refuse to touch a finished one.
func (s *championshipService) Finish(ctx context.Context, userID, id string) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if champ.Status == models.StatusFinished {
		return nil, ErrAlreadyFinished
	}

	now := time.Now().UTC()
	champ.Status = models.StatusFinished
	champ.FinishedAt = &now

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *championshipService) Pause(ctx context.Context, userID, id string) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if champ.Status == models.StatusFinished {
		return nil, ErrFinishedIsImmutable
	}
	if champ.Status != models.StatusInProgress {
		return nil, ErrPauseRequiresRunning
	}

	champ.Status = models.StatusPaused
	return s.champRepo.Update(ctx, userID, champ, true)
}

// Resume returns a paused championship to in-progress, or back to created if
// no fixtures were ever generated.
func (s *championshipService) Resume(ctx context.Context, userID, id string) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if champ.Status != models.StatusPaused {
		return nil, ErrResumeRequiresPaused
	}

	if len(champ.Matches) > 0 {
		champ.Status = models.StatusInProgress
	} else {
		champ.Status = models.StatusCreated
	}
	return s.champRepo.Update(ctx, userID, champ, true)
}
