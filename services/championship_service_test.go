package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/services"
)

func TestCreateValidation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		input   services.CreateChampionshipInput
		wantErr error
	}{
		{"blank name", services.CreateChampionshipInput{Name: "   ", Type: models.TypeRoundRobin}, services.ErrChampionshipNameRequired},
		{"invalid type", services.CreateChampionshipInput{Name: "League", Type: "ladder"}, services.ErrInvalidChampionshipType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.champs.Create(ctx, testUser, tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("Create: err = %v, want %v", err, tc.wantErr)
			}
		})
	}

	champ, err := f.champs.Create(ctx, testUser, services.CreateChampionshipInput{
		Name: "  City League  ", Type: models.TypeGroups,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if champ.Name != "City League" {
		t.Errorf("Create did not trim name: %q", champ.Name)
	}
}

func TestFinishIsIrreversible(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 2)

	finished, err := f.champs.Finish(ctx, testUser, champ.ID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.Status != models.StatusFinished {
		t.Errorf("status = %q, want finished", finished.Status)
	}
	if finished.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}

	if _, err := f.champs.Finish(ctx, testUser, champ.ID); !errors.Is(err, services.ErrAlreadyFinished) {
		t.Errorf("second Finish: err = %v, want ErrAlreadyFinished", err)
	}
	if _, err := f.champs.Pause(ctx, testUser, champ.ID); !errors.Is(err, services.ErrFinishedIsImmutable) {
		t.Errorf("Pause after finish: err = %v, want ErrFinishedIsImmutable", err)
	}
	if _, err := f.champs.Resume(ctx, testUser, champ.ID); !errors.Is(err, services.ErrResumeRequiresPaused) {
		t.Errorf("Resume after finish: err = %v, want ErrResumeRequiresPaused", err)
	}
}

func TestPauseResume(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 2)

	// A created championship cannot be paused.
	if _, err := f.champs.Pause(ctx, testUser, champ.ID); !errors.Is(err, services.ErrPauseRequiresRunning) {
		t.Errorf("Pause while created: err = %v, want ErrPauseRequiresRunning", err)
	}
	if _, err := f.champs.Resume(ctx, testUser, champ.ID); !errors.Is(err, services.ErrResumeRequiresPaused) {
		t.Errorf("Resume while created: err = %v, want ErrResumeRequiresPaused", err)
	}

	// First generation moves it to in-progress; then pause and resume.
	champ = f.generateManualPair(t, champ)
	if champ.Status != models.StatusInProgress {
		t.Fatalf("status after generation = %q, want in_progress", champ.Status)
	}

	paused, err := f.champs.Pause(ctx, testUser, champ.ID)
	if err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if paused.Status != models.StatusPaused {
		t.Errorf("status after pause = %q, want paused", paused.Status)
	}

	resumed, err := f.champs.Resume(ctx, testUser, champ.ID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.Status != models.StatusInProgress {
		t.Errorf("status after resume = %q, want in_progress", resumed.Status)
	}
}

func TestResumeWithoutMatchesReturnsToCreated(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 2)

	// Force a paused state with no matches directly through the repository.
	champ.Status = models.StatusPaused
	if _, err := f.repo.Update(ctx, testUser, champ, false); err != nil {
		t.Fatalf("seed paused state: %v", err)
	}

	resumed, err := f.champs.Resume(ctx, testUser, champ.ID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.Status != models.StatusCreated {
		t.Errorf("status after resume = %q, want created", resumed.Status)
	}
}

func TestCurrentChampionshipFlow(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	champ := f.newChampionship(t, 2)

	if err := f.champs.SetCurrent(ctx, testUser, champ.ID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	current, err := f.champs.GetCurrent(ctx, testUser)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if current == nil || current.ID != champ.ID {
		t.Fatalf("GetCurrent = %+v, want championship %s", current, champ.ID)
	}
}
