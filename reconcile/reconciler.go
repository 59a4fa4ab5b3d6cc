// Package reconcile implements the remote-vs-cache policy: the remote store
// is the only authoritative source while reachable, the local cache is written
// purely as a side effect and consulted only when the store is offline. There
// is no queued-write or merge mechanism; mutations fail hard when offline.
package reconcile

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/matchday-app/championship-engine/cache"
	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/models"
)

const championshipsKeyPrefix = "championships:"

type Reconciler struct {
	store  docstore.Store
	kv     cache.KeyValue
	logger *slog.Logger

	mu     sync.Mutex
	owners map[string]struct{}
}

func NewReconciler(store docstore.Store, kv cache.KeyValue, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		kv:     kv,
		logger: logger,
		owners: make(map[string]struct{}),
	}
}

// Online probes the remote store.
func (r *Reconciler) Online(ctx context.Context) bool {
	return r.store.Ping(ctx) == nil
}

// Mirror writes the owner's championship list into the local cache. Failures
// are logged and swallowed: the mirror is best effort and must never fail a
// successful remote operation.
func (r *Reconciler) Mirror(ownerID string, championships []models.Championship) {
	r.mu.Lock()
	r.owners[ownerID] = struct{}{}
	r.mu.Unlock()

	data, err := json.Marshal(championships)
	if err != nil {
		r.logger.Warn("failed to marshal championships for cache mirror",
			slog.String("owner_id", ownerID), slog.Any("error", err))
		return
	}
	if err := r.kv.Set(championshipsKeyPrefix+ownerID, string(data)); err != nil {
		r.logger.Warn("failed to write championship cache mirror",
			slog.String("owner_id", ownerID), slog.Any("error", err))
	}
}

// Cached returns the last mirrored championship list for the owner, or an
// empty slice when nothing was mirrored. Used only as the offline fallback.
func (r *Reconciler) Cached(ownerID string) []models.Championship {
	raw, ok := r.kv.Get(championshipsKeyPrefix + ownerID)
	if !ok {
		return []models.Championship{}
	}
	var championships []models.Championship
	if err := json.Unmarshal([]byte(raw), &championships); err != nil {
		r.logger.Warn("discarding corrupt championship cache mirror",
			slog.String("owner_id", ownerID), slog.Any("error", err))
		return []models.Championship{}
	}
	return championships
}

// Drop removes the owner's mirror, e.g. after the last championship is deleted.
func (r *Reconciler) Drop(ownerID string) {
	if err := r.kv.Delete(championshipsKeyPrefix + ownerID); err != nil {
		r.logger.Warn("failed to drop championship cache mirror",
			slog.String("owner_id", ownerID), slog.Any("error", err))
	}
}

// KnownOwners lists owners with a mirror maintained in this process, sorted
// for deterministic refresh order. The background refresher walks this set.
func (r *Reconciler) KnownOwners() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	owners := make([]string, 0, len(r.owners))
	for owner := range r.owners {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}
