package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/repositories"
	"github.com/matchday-app/championship-engine/storage"
)

// RosterService owns team and player mutations. Every mutation is a
// read-modify-write of the whole championship aggregate.
type RosterService interface {
	AddTeam(ctx context.Context, userID, championshipID string, input TeamInput) (*models.Championship, error)
	UpdateTeam(ctx context.Context, userID, championshipID, teamID string, input TeamInput) (*models.Championship, error)
	RemoveTeam(ctx context.Context, userID, championshipID, teamID string) (*models.Championship, error)

	AddPlayer(ctx context.Context, userID, championshipID, teamID string, input PlayerInput) (*models.Championship, error)
	UpdatePlayer(ctx context.Context, userID, championshipID, teamID, playerID string, input PlayerInput) (*models.Championship, error)
	RemovePlayer(ctx context.Context, userID, championshipID, teamID, playerID string) (*models.Championship, error)

	SetTeamBadge(ctx context.Context, userID, championshipID, teamID, contentType string, badge io.Reader) (*models.Championship, error)
	SetChampionshipBadge(ctx context.Context, userID, championshipID, contentType string, badge io.Reader) (*models.Championship, error)
}

type TeamInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

type PlayerInput struct {
	Name       string  `json:"name"`
	Skill      int     `json:"skill"`
	Position   string  `json:"position,omitempty"`
	NationalID *string `json:"national_id,omitempty"`
}

type rosterService struct {
	champRepo repositories.ChampionshipRepository
	uploader  storage.FileUploader
}

func NewRosterService(champRepo repositories.ChampionshipRepository, uploader storage.FileUploader) RosterService {
	return &rosterService{champRepo: champRepo, uploader: uploader}
}

func (s *rosterService) AddTeam(ctx context.Context, userID, championshipID string, input TeamInput) (*models.Championship, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	if teamNameTaken(champ, name, "") {
		return nil, ErrTeamNameTaken
	}

	champ.Teams = append(champ.Teams, models.Team{
		ID:      uuid.NewString(),
		Name:    name,
		Color:   input.Color,
		Players: []models.Player{},
	})

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *rosterService) UpdateTeam(ctx context.Context, userID, championshipID, teamID string, input TeamInput) (*models.Championship, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	team := champ.TeamByID(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if teamNameTaken(champ, name, teamID) {
		return nil, ErrTeamNameTaken
	}

	team.Name = name
	team.Color = input.Color

	return s.champRepo.Update(ctx, userID, champ, true)
}

// RemoveTeam refuses to drop a team that already appears in fixtures: matches
// are never deleted individually and a dangling side would poison standings.
func (s *rosterService) RemoveTeam(ctx context.Context, userID, championshipID, teamID string) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	if champ.TeamByID(teamID) == nil {
		return nil, ErrTeamNotFound
	}
	if champ.TeamInAnyMatch(teamID) {
		return nil, ErrTeamInMatches
	}

	teams := make([]models.Team, 0, len(champ.Teams)-1)
	for _, team := range champ.Teams {
		if team.ID != teamID {
			teams = append(teams, team)
		}
	}
	champ.Teams = teams

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *rosterService) AddPlayer(ctx context.Context, userID, championshipID, teamID string, input PlayerInput) (*models.Championship, error) {
	if err := validatePlayerInput(input); err != nil {
		return nil, err
	}

	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	team := champ.TeamByID(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}

	team.Players = append(team.Players, models.Player{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(input.Name),
		Skill:      input.Skill,
		Position:   input.Position,
		NationalID: input.NationalID,
	})

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *rosterService) UpdatePlayer(ctx context.Context, userID, championshipID, teamID, playerID string, input PlayerInput) (*models.Championship, error) {
	if err := validatePlayerInput(input); err != nil {
		return nil, err
	}

	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	team := champ.TeamByID(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}
	player := team.PlayerByID(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	// Identity edit only; card counters belong to result recording.
	player.Name = strings.TrimSpace(input.Name)
	player.Skill = input.Skill
	player.Position = input.Position
	player.NationalID = input.NationalID

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *rosterService) RemovePlayer(ctx context.Context, userID, championshipID, teamID, playerID string) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	team := champ.TeamByID(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if team.PlayerByID(playerID) == nil {
		return nil, ErrPlayerNotFound
	}

	players := make([]models.Player, 0, len(team.Players)-1)
	for _, player := range team.Players {
		if player.ID != playerID {
			players = append(players, player)
		}
	}
	team.Players = players

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *rosterService) SetTeamBadge(ctx context.Context, userID, championshipID, teamID, contentType string, badge io.Reader) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}
	team := champ.TeamByID(teamID)
	if team == nil {
		return nil, ErrTeamNotFound
	}

	key := fmt.Sprintf("badges/%s/%s", championshipID, teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, badge)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team badge: %w", err)
	}

	team.BadgeKey = &result.Key
	team.BadgeURL = &result.Location

	return s.champRepo.Update(ctx, userID, champ, true)
}

func (s *rosterService) SetChampionshipBadge(ctx context.Context, userID, championshipID, contentType string, badge io.Reader) (*models.Championship, error) {
	champ, err := s.champRepo.GetByID(ctx, userID, championshipID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("badges/%s", championshipID)
	result, err := s.uploader.Upload(ctx, key, contentType, badge)
	if err != nil {
		return nil, fmt.Errorf("failed to upload championship badge: %w", err)
	}

	champ.BadgeKey = &result.Key
	champ.BadgeURL = &result.Location

	return s.champRepo.Update(ctx, userID, champ, true)
}

func teamNameTaken(champ *models.Championship, name, excludeTeamID string) bool {
	for _, team := range champ.Teams {
		if team.ID != excludeTeamID && strings.EqualFold(team.Name, name) {
			return true
		}
	}
	return false
}

func validatePlayerInput(input PlayerInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrPlayerNameRequired
	}
	if input.Skill < models.MinPlayerSkill || input.Skill > models.MaxPlayerSkill {
		return ErrInvalidPlayerSkill
	}
	return nil
}
