// Package excavations keeps the journal of completed site excavations.
package excavations

import (
	"context"

	"github.com/dmitrijs2005/emaildig/internal/models"
)

// Repository appends and lists journal entries. List returns the newest
// entry first.
type Repository interface {
	Add(ctx context.Context, e models.Excavation) error
	List(ctx context.Context) ([]models.Excavation, error)
	Clear(ctx context.Context) error
}
