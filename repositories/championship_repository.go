package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/models"
	"github.com/matchday-app/championship-engine/reconcile"
)

var (
	// ErrUnauthenticated is returned when no caller identity is supplied.
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrOffline is returned when the remote store is unreachable for a
	// mutating or correctness-relevant read. There is no offline write path.
	ErrOffline = errors.New("remote store unreachable")

	ErrChampionshipNotFound = errors.New("championship not found")
)

const (
	championshipCollection = "championships"
	currentCollection      = "current_championships"
)

// ChampionshipRepository owns the championship aggregate against the remote
// store. Every operation is scoped to the calling user; records owned by
// other users are reported as not found. All mutations are whole-document
// overwrites: callers read the full aggregate, mutate it in memory, and
// persist it back. Last write wins; there is no version check.
type ChampionshipRepository interface {
	Create(ctx context.Context, ownerID, name string, ctype models.ChampionshipType) (*models.Championship, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Championship, error)
	List(ctx context.Context, ownerID string) ([]models.Championship, error)

	// Update overwrites the stored aggregate. With forceReload it re-reads the
	// written document and the owner's collection before returning, so a
	// subsequent GetByID observes the write and the cache mirror is fresh.
	Update(ctx context.Context, ownerID string, champ *models.Championship, forceReload bool) (*models.Championship, error)

	Delete(ctx context.Context, ownerID, id string) error

	// SetCurrent and GetCurrent manage the per-user "current championship"
	// pointer, stored as a side document keyed by the user id.
	SetCurrent(ctx context.Context, ownerID, championshipID string) error
	GetCurrent(ctx context.Context, ownerID string) (*models.Championship, error)
}

type docstoreChampionshipRepository struct {
	store      docstore.Store
	reconciler *reconcile.Reconciler
}

func NewDocstoreChampionshipRepository(store docstore.Store, reconciler *reconcile.Reconciler) ChampionshipRepository {
	return &docstoreChampionshipRepository{store: store, reconciler: reconciler}
}

type currentPointer struct {
	ChampionshipID string `json:"championship_id"`
}

func (r *docstoreChampionshipRepository) Create(ctx context.Context, ownerID, name string, ctype models.ChampionshipType) (*models.Championship, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()
	champ := &models.Championship{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      ctype,
		Status:    models.StatusCreated,
		Teams:     []models.Team{},
		Matches:   []models.Match{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.put(ctx, ownerID, champ); err != nil {
		return nil, err
	}
	return champ, nil
}

func (r *docstoreChampionshipRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Championship, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, championshipCollection, id)
	if err != nil {
		return nil, r.translate(err)
	}
	// Records owned by someone else are indistinguishable from absent ones.
	if doc.Owner != ownerID {
		return nil, ErrChampionshipNotFound
	}
	return decodeChampionship(doc.Data)
}

func (r *docstoreChampionshipRepository) List(ctx context.Context, ownerID string) ([]models.Championship, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	championships, err := r.listRemote(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrOffline) {
			// Presentation fallback: last mirrored snapshot, possibly empty.
			return r.reconciler.Cached(ownerID), nil
		}
		return nil, err
	}

	r.reconciler.Mirror(ownerID, championships)
	return championships, nil
}

func (r *docstoreChampionshipRepository) Update(ctx context.Context, ownerID string, champ *models.Championship, forceReload bool) (*models.Championship, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	if champ.ID == "" {
		return nil, ErrChampionshipNotFound
	}

	// Ownership check before the overwrite; a record owned by another user is
	// reported as not found.
	if _, err := r.GetByID(ctx, ownerID, champ.ID); err != nil {
		return nil, err
	}

	champ.UpdatedAt = time.Now().UTC()
	if err := r.put(ctx, ownerID, champ); err != nil {
		return nil, err
	}

	if !forceReload {
		return champ, nil
	}

	// Read back the written document and refresh the owner's mirror so a
	// caller never observes stale data right after its own write.
	var (
		reloaded      *models.Championship
		championships []models.Championship
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reloaded, err = r.GetByID(gCtx, ownerID, champ.ID)
		return err
	})
	g.Go(func() error {
		var err error
		championships, err = r.listRemote(gCtx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("write landed but reload failed: %w", err)
	}

	r.reconciler.Mirror(ownerID, championships)
	return reloaded, nil
}

func (r *docstoreChampionshipRepository) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}

	if _, err := r.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, championshipCollection, id); err != nil {
		return r.translate(err)
	}

	// Drop a dangling current pointer; best effort.
	if doc, err := r.store.Get(ctx, currentCollection, ownerID); err == nil {
		var pointer currentPointer
		if json.Unmarshal(doc.Data, &pointer) == nil && pointer.ChampionshipID == id {
			_ = r.store.Delete(ctx, currentCollection, ownerID)
		}
	}

	if championships, err := r.listRemote(ctx, ownerID); err == nil {
		r.reconciler.Mirror(ownerID, championships)
	}
	return nil
}

func (r *docstoreChampionshipRepository) SetCurrent(ctx context.Context, ownerID, championshipID string) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}

	if _, err := r.GetByID(ctx, ownerID, championshipID); err != nil {
		return err
	}

	data, err := json.Marshal(currentPointer{ChampionshipID: championshipID})
	if err != nil {
		return fmt.Errorf("failed to marshal current pointer: %w", err)
	}
	doc := &docstore.Document{ID: ownerID, Owner: ownerID, Data: data}
	if err := r.store.Put(ctx, currentCollection, doc); err != nil {
		return r.translate(err)
	}
	return nil
}

func (r *docstoreChampionshipRepository) GetCurrent(ctx context.Context, ownerID string) (*models.Championship, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	doc, err := r.store.Get(ctx, currentCollection, ownerID)
	if err != nil {
		// Non-critical read: no pointer or unreachable store both yield nil.
		if errors.Is(err, docstore.ErrDocumentNotFound) ||
			errors.Is(err, docstore.ErrStoreUnavailable) {
			return nil, nil
		}
		return nil, err
	}

	var pointer currentPointer
	if err := json.Unmarshal(doc.Data, &pointer); err != nil {
		return nil, fmt.Errorf("corrupt current pointer for user %s: %w", ownerID, err)
	}

	champ, err := r.GetByID(ctx, ownerID, pointer.ChampionshipID)
	if err != nil {
		// A stale pointer to a deleted championship is treated as unset.
		if errors.Is(err, ErrChampionshipNotFound) || errors.Is(err, ErrOffline) {
			return nil, nil
		}
		return nil, err
	}
	return champ, nil
}

func (r *docstoreChampionshipRepository) listRemote(ctx context.Context, ownerID string) ([]models.Championship, error) {
	docs, err := r.store.FindByOwner(ctx, championshipCollection, ownerID)
	if err != nil {
		return nil, r.translate(err)
	}

	championships := make([]models.Championship, 0, len(docs))
	for _, doc := range docs {
		champ, decodeErr := decodeChampionship(doc.Data)
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode championship %s: %w", doc.ID, decodeErr)
		}
		championships = append(championships, *champ)
	}
	return championships, nil
}

func (r *docstoreChampionshipRepository) put(ctx context.Context, ownerID string, champ *models.Championship) error {
	data, err := json.Marshal(champ)
	if err != nil {
		return fmt.Errorf("failed to marshal championship: %w", err)
	}
	doc := &docstore.Document{ID: champ.ID, Owner: ownerID, Data: data}
	if err := r.store.Put(ctx, championshipCollection, doc); err != nil {
		return r.translate(err)
	}
	return nil
}

func (r *docstoreChampionshipRepository) translate(err error) error {
	if errors.Is(err, docstore.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %v", ErrOffline, err)
	}
	if errors.Is(err, docstore.ErrDocumentNotFound) {
		return ErrChampionshipNotFound
	}
	return err
}

func decodeChampionship(data []byte) (*models.Championship, error) {
	champ := &models.Championship{}
	if err := json.Unmarshal(data, champ); err != nil {
		return nil, err
	}
	if champ.Teams == nil {
		champ.Teams = []models.Team{}
	}
	if champ.Matches == nil {
		champ.Matches = []models.Match{}
	}
	return champ, nil
}
