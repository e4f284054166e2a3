package session

import (
	"context"

	"github.com/dmitrijs2005/emaildig/internal/models"
)

// Store is the persistence the Manager needs. storage.SQLite and
// storage.Memory implement it.
type Store interface {
	// Load returns the document in slot key, or (nil, nil) when there is none.
	Load(ctx context.Context, key string) ([]byte, error)
	Clear(ctx context.Context, key string) error
	// Checkpoint stores doc in slot key and appends rec to the journal when
	// it is non-nil, atomically where the backend allows it.
	Checkpoint(ctx context.Context, key string, doc []byte, rec *models.Excavation) error
	History(ctx context.Context) ([]models.Excavation, error)
	// Slots returns every save slot document keyed by slot name.
	Slots(ctx context.Context) (map[string][]byte, error)
	// Wipe removes all slots and the journal.
	Wipe(ctx context.Context) error
}
