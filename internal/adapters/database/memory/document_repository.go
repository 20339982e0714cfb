package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
)

// DocumentRepository is a map-backed document store. It backs the tests and
// the no-database demo mode; semantics mirror the Postgres adapter, including
// change notification on every write.
type DocumentRepository struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
	order       map[string][]string
	listeners   []portsrepo.ChangeListener
}

// NewDocumentRepository creates an empty in-memory document store.
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		collections: make(map[string]map[string]json.RawMessage),
		order:       make(map[string][]string),
	}
}

var _ portsrepo.DocumentRepository = (*DocumentRepository)(nil)

// ListByCollection returns documents in insertion order.
func (r *DocumentRepository) ListByCollection(_ context.Context, collection string) ([]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]json.RawMessage, 0, len(r.order[collection]))
	for _, docID := range r.order[collection] {
		docs = append(docs, r.collections[collection][docID])
	}
	return docs, nil
}

// Upsert inserts or replaces a document and notifies subscribers.
func (r *DocumentRepository) Upsert(_ context.Context, collection string, docID string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, docID, err)
	}

	r.mu.Lock()
	if r.collections[collection] == nil {
		r.collections[collection] = make(map[string]json.RawMessage)
	}
	if _, exists := r.collections[collection][docID]; !exists {
		r.order[collection] = append(r.order[collection], docID)
	}
	r.collections[collection][docID] = data
	listeners := append([]portsrepo.ChangeListener(nil), r.listeners...)
	r.mu.Unlock()

	for _, listener := range listeners {
		listener(collection)
	}
	return nil
}

// Remove deletes a document and notifies subscribers.
func (r *DocumentRepository) Remove(_ context.Context, collection string, docID string) error {
	r.mu.Lock()
	if docs, ok := r.collections[collection]; ok {
		delete(docs, docID)
		ids := r.order[collection][:0]
		for _, id := range r.order[collection] {
			if id != docID {
				ids = append(ids, id)
			}
		}
		r.order[collection] = ids
	}
	listeners := append([]portsrepo.ChangeListener(nil), r.listeners...)
	r.mu.Unlock()

	for _, listener := range listeners {
		listener(collection)
	}
	return nil
}

// Subscribe registers a listener for document writes.
func (r *DocumentRepository) Subscribe(listener portsrepo.ChangeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}
