package repositories

import (
	"context"
	"encoding/json"
)

// ChangeListener is notified after any document write, with the collection
// that changed. Listeners must be cheap; they run on the writer's goroutine.
type ChangeListener func(collection string)

// DocumentRepository is the persistence port of the accounting core. Every
// entity lives as a JSON document in a named collection; the core only ever
// lists whole collections and assumes each listing is a consistent snapshot
// for the duration of one build.
type DocumentRepository interface {
	// ListByCollection returns every document in the collection.
	ListByCollection(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Upsert inserts or replaces a document and notifies subscribers.
	Upsert(ctx context.Context, collection string, docID string, doc any) error

	// Remove deletes a document and notifies subscribers. Removing a missing
	// document is not an error.
	Remove(ctx context.Context, collection string, docID string) error

	// Subscribe registers a listener for document writes.
	Subscribe(listener ChangeListener)
}

// DecodeDocs unmarshals a listed collection into typed documents.
func DecodeDocs[T any](docs []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}
