package excavations

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/emaildig/internal/models"
)

type MemoryRepository struct {
	mu      sync.Mutex
	entries []models.Excavation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Add(ctx context.Context, e models.Excavation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Excavation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.entries)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Excavation) int {
		return cmp.Compare(b.CompletedAt.UnixNano(), a.CompletedAt.UnixNano())
	})
	return out, nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}
