package storage

import (
	"context"

	"github.com/dmitrijs2005/emaildig/internal/models"
	"github.com/dmitrijs2005/emaildig/internal/repositories/excavations"
	"github.com/dmitrijs2005/emaildig/internal/repositories/metadata"
)

// Memory keeps everything in process. Nothing survives a restart.
type Memory struct {
	slots   *metadata.MemoryRepository
	journal *excavations.MemoryRepository
}

func NewMemory() *Memory {
	return &Memory{
		slots:   metadata.NewMemoryRepository(),
		journal: excavations.NewMemoryRepository(),
	}
}

func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	return m.slots.Get(ctx, key)
}

func (m *Memory) Clear(ctx context.Context, key string) error {
	return m.slots.Delete(ctx, key)
}

func (m *Memory) Checkpoint(ctx context.Context, key string, doc []byte, rec *models.Excavation) error {
	if err := m.slots.Set(ctx, key, doc); err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	return m.journal.Add(ctx, *rec)
}

func (m *Memory) History(ctx context.Context) ([]models.Excavation, error) {
	return m.journal.List(ctx)
}

func (m *Memory) Slots(ctx context.Context) (map[string][]byte, error) {
	return m.slots.List(ctx)
}

func (m *Memory) Wipe(ctx context.Context) error {
	if err := m.slots.Clear(ctx); err != nil {
		return err
	}
	return m.journal.Clear(ctx)
}

// Put seeds the slot directly.
func (m *Memory) Put(ctx context.Context, key string, doc []byte) error {
	return m.slots.Set(ctx, key, doc)
}

func (m *Memory) Close() error { return nil }
