// Package store persists laid-out documents for the API server.
//
// A [Record] keeps the source document next to its layout result, so a
// stored layout can be re-rendered in any format without decoding the
// document again. Backends:
//
//   - MemoryStore: in-process map, used by tests and `serve` without a database
//   - MongoStore: MongoDB collection, used by `serve --mongo-uri`
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/boxlayout/pkg/errors"
	"github.com/matzehuels/boxlayout/pkg/scene"
)

// Record is one stored layout.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Format    string        `json:"format" bson:"format"`
	Document  string        `json:"document" bson:"document"`
	DocHash   string        `json:"doc_hash" bson:"doc_hash"`
	Result    *scene.Result `json:"result" bson:"result"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Store saves and loads records. Implementations are safe for concurrent use.
type Store interface {
	// Save stores rec, assigning an ID and creation time when unset, and
	// returns the stored record.
	Save(ctx context.Context, rec Record) (Record, error)

	// Get returns the record with the given ID, or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (Record, error)

	// Delete removes the record with the given ID, or returns an
	// ErrCodeNotFound error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// prepare fills in the ID and timestamp of a new record.
func prepare(rec Record, now time.Time) Record {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	return rec
}

// ValidateID checks that id is a UUID as produced by Save.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
}
