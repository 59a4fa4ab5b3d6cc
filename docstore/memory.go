package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a thread-safe in-memory Store used by tests and local
// development. SetUnavailable simulates an unreachable remote store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	unavailable bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
	}
}

// SetUnavailable toggles simulated connectivity loss.
func (s *MemoryStore) SetUnavailable(unavailable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = unavailable
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return nil, ErrStoreUnavailable
	}
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	copied := doc
	copied.Data = append(json.RawMessage(nil), doc.Data...)
	return &copied, nil
}

func (s *MemoryStore) Put(ctx context.Context, collection string, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return ErrStoreUnavailable
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	doc.UpdatedAt = time.Now()
	stored := *doc
	stored.Data = append(json.RawMessage(nil), doc.Data...)
	s.collections[collection][doc.ID] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return ErrStoreUnavailable
	}
	if _, ok := s.collections[collection][id]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) FindByOwner(ctx context.Context, collection, owner string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return nil, ErrStoreUnavailable
	}
	return s.filter(collection, func(doc Document) bool {
		return doc.Owner == owner
	}), nil
}

func (s *MemoryStore) FindByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return nil, ErrStoreUnavailable
	}
	return s.filter(collection, func(doc Document) bool {
		var payload map[string]interface{}
		if err := json.Unmarshal(doc.Data, &payload); err != nil {
			return false
		}
		str, ok := payload[field].(string)
		return ok && str == value
	}), nil
}

func (s *MemoryStore) filter(collection string, keep func(Document) bool) []Document {
	documents := make([]Document, 0)
	for _, doc := range s.collections[collection] {
		if keep(doc) {
			copied := doc
			copied.Data = append(json.RawMessage(nil), doc.Data...)
			documents = append(documents, copied)
		}
	}
	// Map iteration order is random; keep the contract's oldest-first order.
	sort.Slice(documents, func(i, j int) bool {
		if !documents[i].UpdatedAt.Equal(documents[j].UpdatedAt) {
			return documents[i].UpdatedAt.Before(documents[j].UpdatedAt)
		}
		return documents[i].ID < documents[j].ID
	})
	return documents
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return ErrStoreUnavailable
	}
	return nil
}
