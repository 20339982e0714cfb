package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDocumentRepository stores every collection in a single documents table
// with a JSONB payload. Change listeners fire after each successful write.
type PgxDocumentRepository struct {
	pool *pgxpool.Pool

	mu        sync.RWMutex
	listeners []portsrepo.ChangeListener
}

// NewPgxDocumentRepository creates a new repository over the documents table.
func NewPgxDocumentRepository(pool *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{pool: pool}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

// ListByCollection retrieves every document in a collection, oldest first so
// listings are deterministic.
func (r *PgxDocumentRepository) ListByCollection(ctx context.Context, collection string) ([]json.RawMessage, error) {
	query := `
		SELECT data
		FROM documents
		WHERE collection = $1
		ORDER BY created_at, doc_id;
	`
	rows, err := r.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan document in collection %s: %w", collection, err)
		}
		docs = append(docs, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents in collection %s: %w", collection, err)
	}
	return docs, nil
}

// Upsert inserts or replaces a document and notifies subscribers.
func (r *PgxDocumentRepository) Upsert(ctx context.Context, collection string, docID string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, docID, err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO documents (collection, doc_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (collection, doc_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.pool.Exec(ctx, query, collection, docID, data, now); err != nil {
		return fmt.Errorf("failed to upsert document %s/%s: %w", collection, docID, err)
	}

	r.notify(collection)
	return nil
}

// Remove deletes a document and notifies subscribers. Removing a document
// that does not exist is not an error.
func (r *PgxDocumentRepository) Remove(ctx context.Context, collection string, docID string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND doc_id = $2;`
	if _, err := r.pool.Exec(ctx, query, collection, docID); err != nil {
		return fmt.Errorf("failed to remove document %s/%s: %w", collection, docID, err)
	}

	r.notify(collection)
	return nil
}

// Subscribe registers a listener for document writes.
func (r *PgxDocumentRepository) Subscribe(listener portsrepo.ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *PgxDocumentRepository) notify(collection string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, listener := range r.listeners {
		listener(collection)
	}
}
