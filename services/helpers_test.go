package services_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/matchday-app/championship-engine/cache"
	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/fixtures"
	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/reconcile"
	"github.com/matchday-app/championship-engine/repositories"
	"github.com/matchday-app/championship-engine/services"
	"github.com/matchday-app/championship-engine/storage"
)

const testUser = "user-1"

type serviceFixture struct {
	store    *docstore.MemoryStore
	repo     repositories.ChampionshipRepository
	champs   services.ChampionshipService
	schedule services.ScheduleService
	matches  services.MatchService
	roster   services.RosterService
}

func newServiceFixture() *serviceFixture {
	store := docstore.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reconciler := reconcile.NewReconciler(store, cache.NewMemory(), logger)
	repo := repositories.NewDocstoreChampionshipRepository(store, reconciler)
	hub := fixtures.NewHub(logger)

	return &serviceFixture{
		store:    store,
		repo:     repo,
		champs:   services.NewChampionshipService(repo),
		schedule: services.NewScheduleService(repo, hub, logger),
		matches:  services.NewMatchService(repo, hub),
		roster:   services.NewRosterService(repo, stubUploader{}),
	}
}

// newChampionship seeds a championship with the given number of teams, each
// with one player.
func (f *serviceFixture) newChampionship(t *testing.T, teamCount int) *models.Championship {
	t.Helper()
	ctx := context.Background()

	champ, err := f.champs.Create(ctx, testUser, services.CreateChampionshipInput{
		Name: "Test League",
		Type: models.TypeRoundRobin,
	})
	if err != nil {
		t.Fatalf("create championship: %v", err)
	}

	names := []string{"Rovers", "United", "Wanderers", "Athletic", "City", "Albion"}
	for i := 0; i < teamCount; i++ {
		champ, err = f.roster.AddTeam(ctx, testUser, champ.ID, services.TeamInput{Name: names[i]})
		if err != nil {
			t.Fatalf("add team %s: %v", names[i], err)
		}
		champ, err = f.roster.AddPlayer(ctx, testUser, champ.ID, champ.Teams[i].ID, services.PlayerInput{
			Name: names[i] + " Captain", Skill: 3,
		})
		if err != nil {
			t.Fatalf("add player to %s: %v", names[i], err)
		}
	}
	return champ
}

// generateManualPair appends one manual fixture between the first two teams
// and returns the refreshed championship.
func (f *serviceFixture) generateManualPair(t *testing.T, champ *models.Championship) *models.Championship {
	t.Helper()
	out, err := f.schedule.GenerateFixtures(context.Background(), testUser, champ.ID, services.GenerateFixturesInput{
		Mode: services.GenerationModeManual,
		Pairings: []fixtures.Pairing{
			{HomeTeamID: champ.Teams[0].ID, AwayTeamID: champ.Teams[1].ID},
		},
	})
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	return out.Championship
}

type stubUploader struct{}

func (stubUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (*storage.UploadResult, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (stubUploader) Delete(ctx context.Context, key string) error { return nil }

func (stubUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

func badgeBody() io.Reader { return strings.NewReader("not-a-real-png") }
