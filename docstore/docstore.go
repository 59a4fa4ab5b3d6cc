// Package docstore defines the remote document store the engine is written
// against: documents addressable by collection name and id, equality-filtered
// queries, full-document create-or-replace writes, and a connectivity probe.
// The store has last-writer-wins semantics and no cross-document transactions.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrDocumentNotFound is returned for reads and deletes of absent documents.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrStoreUnavailable is returned when the store cannot be reached. Callers
	// translate it into their own offline error.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// Document is one stored record. Owner is indexed for equality queries; Data
// is the opaque payload, written and replaced as a whole.
type Document struct {
	ID        string
	Owner     string
	Data      json.RawMessage
	UpdatedAt time.Time
}

// Store is the remote document store contract.
type Store interface {
	// Get reads one document. ErrDocumentNotFound when absent.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Put creates or fully replaces a document. An empty doc.ID is assigned by
	// the store and written back. Later writers replace earlier state entirely.
	Put(ctx context.Context, collection string, doc *Document) error

	// Delete removes a document. ErrDocumentNotFound when absent.
	Delete(ctx context.Context, collection, id string) error

	// FindByOwner returns all documents in the collection owned by the given
	// identifier, oldest first.
	FindByOwner(ctx context.Context, collection, owner string) ([]Document, error)

	// FindByField returns documents whose payload field equals the given value.
	FindByField(ctx context.Context, collection, field, value string) ([]Document, error)

	// Ping probes reachability; used as the online/offline check.
	Ping(ctx context.Context) error
}
