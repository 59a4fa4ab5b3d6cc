package repositories_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/matchday-app/championship-engine/cache"
	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/reconcile"
	"github.com/matchday-app/championship-engine/repositories"
)

type repoFixture struct {
	store *docstore.MemoryStore
	kv    *cache.Memory
	repo  repositories.ChampionshipRepository
}

func newRepoFixture() *repoFixture {
	store := docstore.NewMemoryStore()
	kv := cache.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reconciler := reconcile.NewReconciler(store, kv, logger)
	return &repoFixture{
		store: store,
		kv:    kv,
		repo:  repositories.NewDocstoreChampionshipRepository(store, reconciler),
	}
}

func TestCreateAndGetByID(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	champ, err := f.repo.Create(ctx, "user-1", "Sunday League", models.TypeRoundRobin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if champ.ID == "" {
		t.Fatal("Create returned a championship without an id")
	}
	if champ.Status != models.StatusCreated {
		t.Errorf("new championship status = %q, want %q", champ.Status, models.StatusCreated)
	}

	got, err := f.repo.GetByID(ctx, "user-1", champ.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Sunday League" || got.Type != models.TypeRoundRobin {
		t.Errorf("GetByID returned %q/%q, want Sunday League/round_robin", got.Name, got.Type)
	}
	if got.Teams == nil || got.Matches == nil {
		t.Error("decoded championship has nil slices, want empty slices")
	}
}

func TestOwnerScoping(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	champ, err := f.repo.Create(ctx, "user-1", "Private Cup", models.TypeKnockout)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another user's record must be indistinguishable from an absent one.
	if _, err := f.repo.GetByID(ctx, "user-2", champ.ID); !errors.Is(err, repositories.ErrChampionshipNotFound) {
		t.Errorf("GetByID as other user: err = %v, want ErrChampionshipNotFound", err)
	}
	if err := f.repo.Delete(ctx, "user-2", champ.ID); !errors.Is(err, repositories.ErrChampionshipNotFound) {
		t.Errorf("Delete as other user: err = %v, want ErrChampionshipNotFound", err)
	}
	if _, err := f.repo.Update(ctx, "user-2", champ, false); !errors.Is(err, repositories.ErrChampionshipNotFound) {
		t.Errorf("Update as other user: err = %v, want ErrChampionshipNotFound", err)
	}

	list, err := f.repo.List(ctx, "user-2")
	if err != nil {
		t.Fatalf("List as other user: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List as other user returned %d championships, want 0", len(list))
	}
}

func TestMissingOwnerID(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	if _, err := f.repo.Create(ctx, "", "x", models.TypeRoundRobin); !errors.Is(err, repositories.ErrUnauthenticated) {
		t.Errorf("Create without owner: err = %v, want ErrUnauthenticated", err)
	}
	if _, err := f.repo.List(ctx, ""); !errors.Is(err, repositories.ErrUnauthenticated) {
		t.Errorf("List without owner: err = %v, want ErrUnauthenticated", err)
	}
	if _, err := f.repo.GetCurrent(ctx, ""); !errors.Is(err, repositories.ErrUnauthenticated) {
		t.Errorf("GetCurrent without owner: err = %v, want ErrUnauthenticated", err)
	}
}

func TestUpdateForceReload(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	champ, err := f.repo.Create(ctx, "user-1", "League", models.TypeRoundRobin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	champ.Name = "Renamed League"
	champ.Teams = append(champ.Teams, models.Team{ID: "t1", Name: "Rovers"})

	reloaded, err := f.repo.Update(ctx, "user-1", champ, true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if reloaded.Name != "Renamed League" || len(reloaded.Teams) != 1 {
		t.Errorf("reloaded championship does not reflect the write: %+v", reloaded)
	}
	if !reloaded.UpdatedAt.After(reloaded.CreatedAt) {
		t.Error("UpdatedAt was not advanced on update")
	}

	// The reload path must also refresh the owner's cache mirror.
	if _, ok := f.kv.Get("championships:user-1"); !ok {
		t.Error("forceReload did not mirror the owner's championships into the cache")
	}
}

func TestListOfflineFallsBackToCache(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	if _, err := f.repo.Create(ctx, "user-1", "League", models.TypeRoundRobin); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// A successful List primes the mirror.
	if _, err := f.repo.List(ctx, "user-1"); err != nil {
		t.Fatalf("List: %v", err)
	}

	f.store.SetUnavailable(true)

	list, err := f.repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List while offline: %v", err)
	}
	if len(list) != 1 || list[0].Name != "League" {
		t.Errorf("offline List = %+v, want the mirrored snapshot", list)
	}

	// An owner that never synced gets an empty list, not an error.
	empty, err := f.repo.List(ctx, "user-never-seen")
	if err != nil {
		t.Fatalf("List for unsynced owner while offline: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("offline List for unsynced owner = %+v, want empty", empty)
	}
}

func TestMutationsFailOffline(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	champ, err := f.repo.Create(ctx, "user-1", "League", models.TypeRoundRobin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.store.SetUnavailable(true)

	if _, err := f.repo.Create(ctx, "user-1", "Another", models.TypeRoundRobin); !errors.Is(err, repositories.ErrOffline) {
		t.Errorf("Create while offline: err = %v, want ErrOffline", err)
	}
	if _, err := f.repo.Update(ctx, "user-1", champ, false); !errors.Is(err, repositories.ErrOffline) {
		t.Errorf("Update while offline: err = %v, want ErrOffline", err)
	}
	if err := f.repo.Delete(ctx, "user-1", champ.ID); !errors.Is(err, repositories.ErrOffline) {
		t.Errorf("Delete while offline: err = %v, want ErrOffline", err)
	}
	if _, err := f.repo.GetByID(ctx, "user-1", champ.ID); !errors.Is(err, repositories.ErrOffline) {
		t.Errorf("GetByID while offline: err = %v, want ErrOffline", err)
	}
}

func TestCurrentPointer(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	// Unset pointer reads as nil without error.
	current, err := f.repo.GetCurrent(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetCurrent with no pointer: %v", err)
	}
	if current != nil {
		t.Errorf("GetCurrent with no pointer = %+v, want nil", current)
	}

	champ, err := f.repo.Create(ctx, "user-1", "League", models.TypeRoundRobin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.repo.SetCurrent(ctx, "user-1", champ.ID); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	current, err = f.repo.GetCurrent(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if current == nil || current.ID != champ.ID {
		t.Fatalf("GetCurrent = %+v, want championship %s", current, champ.ID)
	}

	// Pointing at an unowned or absent championship is rejected.
	if err := f.repo.SetCurrent(ctx, "user-2", champ.ID); !errors.Is(err, repositories.ErrChampionshipNotFound) {
		t.Errorf("SetCurrent as other user: err = %v, want ErrChampionshipNotFound", err)
	}

	// Deleting the championship clears the pointer.
	if err := f.repo.Delete(ctx, "user-1", champ.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	current, err = f.repo.GetCurrent(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetCurrent after delete: %v", err)
	}
	if current != nil {
		t.Errorf("GetCurrent after delete = %+v, want nil", current)
	}

	// Offline, the pointer read degrades to nil rather than failing.
	f.store.SetUnavailable(true)
	current, err = f.repo.GetCurrent(ctx, "user-1")
	if err != nil || current != nil {
		t.Errorf("GetCurrent while offline = (%+v, %v), want (nil, nil)", current, err)
	}
}

func TestListMirrorsCache(t *testing.T) {
	f := newRepoFixture()
	ctx := context.Background()

	if _, err := f.repo.Create(ctx, "user-1", "A", models.TypeRoundRobin); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.repo.Create(ctx, "user-1", "B", models.TypeGroups); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := f.repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d championships, want 2", len(list))
	}

	f.store.SetUnavailable(true)
	cached, err := f.repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List while offline: %v", err)
	}
	if len(cached) != 2 {
		t.Errorf("cached List returned %d championships, want 2", len(cached))
	}
}
