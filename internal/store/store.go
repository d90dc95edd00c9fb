// Package store persists payments behind a single id-keyed interface.
//
// Backends: memory, mongo, postgres, sqlite, redis. All of them share the
// same contract:
//   - Get returns nil, nil when no record has the id.
//   - Save with an empty ID assigns a fresh id and inserts; with a non-empty
//     ID it overwrites the record at that id, inserting if absent.
//   - Delete of an absent id is not an error.
//   - List never returns a nil slice.
package store

import (
	"context"

	"payments-gateway/internal/models"
)

type Store interface {
	List(ctx context.Context) ([]models.Payment, error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	Save(ctx context.Context, p models.Payment) (*models.Payment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
