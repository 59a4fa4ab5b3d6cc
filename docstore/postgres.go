package docstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// postgresStore keeps every collection in a single documents table with a
// jsonb payload. Put is an upsert, so writes are whole-document overwrites
// with last-writer-wins semantics, matching the Store contract.
type postgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

// Schema expected by this store:
//
//	CREATE TABLE documents (
//	    collection  TEXT        NOT NULL,
//	    id          TEXT        NOT NULL,
//	    owner_id    TEXT        NOT NULL DEFAULT '',
//	    payload     JSONB       NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (collection, id)
//	);
//	CREATE INDEX documents_owner_idx ON documents (collection, owner_id);

func (s *postgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	query := `
		SELECT id, owner_id, payload, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2`

	doc := &Document{}
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(
		&doc.ID, &doc.Owner, &doc.Data, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, s.handleStoreError(err)
	}
	return doc, nil
}

func (s *postgresStore) Put(ctx context.Context, collection string, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	query := `
		INSERT INTO documents (collection, id, owner_id, payload, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (collection, id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			payload = EXCLUDED.payload,
			updated_at = now()
		RETURNING updated_at`

	err := s.db.QueryRowContext(ctx, query, collection, doc.ID, doc.Owner, []byte(doc.Data)).
		Scan(&doc.UpdatedAt)
	if err != nil {
		return s.handleStoreError(err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return s.handleStoreError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *postgresStore) FindByOwner(ctx context.Context, collection, owner string) ([]Document, error) {
	query := `
		SELECT id, owner_id, payload, updated_at
		FROM documents
		WHERE collection = $1 AND owner_id = $2
		ORDER BY updated_at ASC, id ASC`

	return s.queryDocuments(ctx, query, collection, owner)
}

func (s *postgresStore) FindByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	query := `
		SELECT id, owner_id, payload, updated_at
		FROM documents
		WHERE collection = $1 AND payload->>$2 = $3
		ORDER BY updated_at ASC, id ASC`

	return s.queryDocuments(ctx, query, collection, field, value)
}

func (s *postgresStore) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.handleStoreError(err)
	}
	defer rows.Close()

	documents := make([]Document, 0)
	for rows.Next() {
		var doc Document
		if scanErr := rows.Scan(&doc.ID, &doc.Owner, &doc.Data, &doc.UpdatedAt); scanErr != nil {
			return nil, scanErr
		}
		documents = append(documents, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, s.handleStoreError(err)
	}
	return documents, nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// handleStoreError maps connection-level failures to ErrStoreUnavailable so
// callers can distinguish "offline" from data errors.
func (s *postgresStore) handleStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08xxx: connection exception class, 57P01-57P03: server shutdown.
		switch pqErr.Code.Class() {
		case "08", "57":
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return err
}
