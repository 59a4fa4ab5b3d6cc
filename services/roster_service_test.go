package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday-app/championship-engine/services"
)

func TestAddTeamValidation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 1) // seeds team "Rovers"

	if _, err := f.roster.AddTeam(ctx, testUser, champ.ID, services.TeamInput{Name: "  "}); !errors.Is(err, services.ErrTeamNameRequired) {
		t.Errorf("blank name: err = %v, want ErrTeamNameRequired", err)
	}

	// Name uniqueness is case-insensitive within the championship.
	if _, err := f.roster.AddTeam(ctx, testUser, champ.ID, services.TeamInput{Name: "ROVERS"}); !errors.Is(err, services.ErrTeamNameTaken) {
		t.Errorf("duplicate name: err = %v, want ErrTeamNameTaken", err)
	}

	updated, err := f.roster.AddTeam(ctx, testUser, champ.ID, services.TeamInput{Name: "United"})
	if err != nil {
		t.Fatalf("AddTeam: %v", err)
	}
	if len(updated.Teams) != 2 {
		t.Errorf("championship has %d teams, want 2", len(updated.Teams))
	}
	if updated.Teams[1].Players == nil {
		t.Error("new team has a nil player slice, want empty")
	}
}

func TestUpdateTeamKeepsUniqueness(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 2) // Rovers, United

	if _, err := f.roster.UpdateTeam(ctx, testUser, champ.ID, champ.Teams[1].ID, services.TeamInput{Name: "rovers"}); !errors.Is(err, services.ErrTeamNameTaken) {
		t.Errorf("rename onto existing name: err = %v, want ErrTeamNameTaken", err)
	}

	// Renaming a team to its own name (case change) is allowed.
	updated, err := f.roster.UpdateTeam(ctx, testUser, champ.ID, champ.Teams[0].ID, services.TeamInput{Name: "ROVERS"})
	if err != nil {
		t.Fatalf("UpdateTeam: %v", err)
	}
	if updated.Teams[0].Name != "ROVERS" {
		t.Errorf("team name = %q, want ROVERS", updated.Teams[0].Name)
	}
}

func TestRemoveTeamBlockedByFixtures(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 3)

	champ = f.generateManualPair(t, champ) // pairs teams 0 and 1

	if _, err := f.roster.RemoveTeam(ctx, testUser, champ.ID, champ.Teams[0].ID); !errors.Is(err, services.ErrTeamInMatches) {
		t.Errorf("remove scheduled team: err = %v, want ErrTeamInMatches", err)
	}

	// The third team has no fixtures and can leave.
	updated, err := f.roster.RemoveTeam(ctx, testUser, champ.ID, champ.Teams[2].ID)
	if err != nil {
		t.Fatalf("RemoveTeam: %v", err)
	}
	if len(updated.Teams) != 2 {
		t.Errorf("championship has %d teams after removal, want 2", len(updated.Teams))
	}

	if _, err := f.roster.RemoveTeam(ctx, testUser, champ.ID, "no-such-team"); !errors.Is(err, services.ErrTeamNotFound) {
		t.Errorf("remove unknown team: err = %v, want ErrTeamNotFound", err)
	}
}

func TestPlayerValidation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 1)
	teamID := champ.Teams[0].ID

	cases := []struct {
		name    string
		input   services.PlayerInput
		wantErr error
	}{
		{"blank name", services.PlayerInput{Name: " ", Skill: 3}, services.ErrPlayerNameRequired},
		{"skill too low", services.PlayerInput{Name: "Ana", Skill: 0}, services.ErrInvalidPlayerSkill},
		{"skill too high", services.PlayerInput{Name: "Ana", Skill: 6}, services.ErrInvalidPlayerSkill},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.roster.AddPlayer(ctx, testUser, champ.ID, teamID, tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("AddPlayer: err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	updated, err := f.roster.AddPlayer(ctx, testUser, champ.ID, teamID, services.PlayerInput{
		Name: "Ana", Skill: 5, Position: "forward",
	})
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if len(updated.Teams[0].Players) != 2 {
		t.Errorf("team has %d players, want 2", len(updated.Teams[0].Players))
	}
}

func TestUpdateAndRemovePlayer(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 1)
	teamID := champ.Teams[0].ID
	playerID := champ.Teams[0].Players[0].ID

	updated, err := f.roster.UpdatePlayer(ctx, testUser, champ.ID, teamID, playerID, services.PlayerInput{
		Name: "Renamed", Skill: 1,
	})
	if err != nil {
		t.Fatalf("UpdatePlayer: %v", err)
	}
	player := updated.Teams[0].Players[0]
	if player.Name != "Renamed" || player.Skill != 1 {
		t.Errorf("updated player = %+v, want Renamed/1", player)
	}

	if _, err := f.roster.UpdatePlayer(ctx, testUser, champ.ID, teamID, "ghost", services.PlayerInput{Name: "x", Skill: 2}); !errors.Is(err, services.ErrPlayerNotFound) {
		t.Errorf("update unknown player: err = %v, want ErrPlayerNotFound", err)
	}

	updated, err = f.roster.RemovePlayer(ctx, testUser, champ.ID, teamID, playerID)
	if err != nil {
		t.Fatalf("RemovePlayer: %v", err)
	}
	if len(updated.Teams[0].Players) != 0 {
		t.Errorf("team has %d players after removal, want 0", len(updated.Teams[0].Players))
	}
}

func TestSetTeamBadge(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 1)
	teamID := champ.Teams[0].ID

	updated, err := f.roster.SetTeamBadge(ctx, testUser, champ.ID, teamID, "image/png", badgeBody())
	if err != nil {
		t.Fatalf("SetTeamBadge: %v", err)
	}
	team := updated.Teams[0]
	if team.BadgeKey == nil || *team.BadgeKey != "badges/"+champ.ID+"/"+teamID {
		t.Errorf("badge key = %v, want badges/%s/%s", team.BadgeKey, champ.ID, teamID)
	}
	if team.BadgeURL == nil || *team.BadgeURL == "" {
		t.Error("badge URL not set")
	}

	if _, err := f.roster.SetTeamBadge(ctx, testUser, champ.ID, "ghost", "image/png", badgeBody()); !errors.Is(err, services.ErrTeamNotFound) {
		t.Errorf("badge for unknown team: err = %v, want ErrTeamNotFound", err)
	}
}

func TestSetChampionshipBadge(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 1)

	updated, err := f.roster.SetChampionshipBadge(ctx, testUser, champ.ID, "image/png", badgeBody())
	if err != nil {
		t.Fatalf("SetChampionshipBadge: %v", err)
	}
	if updated.BadgeKey == nil || *updated.BadgeKey != "badges/"+champ.ID {
		t.Errorf("badge key = %v, want badges/%s", updated.BadgeKey, champ.ID)
	}
	if updated.BadgeURL == nil || *updated.BadgeURL == "" {
		t.Error("badge URL not set")
	}
}
