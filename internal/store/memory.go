package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"payments-gateway/internal/models"
)

// Memory keeps payments in a process-local map.
type Memory struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
}

func NewMemory() *Memory {
	return &Memory{payments: make(map[string]models.Payment)}
}

func (m *Memory) List(ctx context.Context) ([]models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, p)
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) Save(ctx context.Context, p models.Payment) (*models.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	m.mu.Lock()
	m.payments[p.ID] = p
	m.mu.Unlock()

	return &p, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.payments, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.payments)), nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
