package session

import (
	"context"
	"sync"
)

// memstore keeps sessions in process memory. It is the default when no
// REDIS_URL is configured and the backing for most tests.
type memstore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() Store {
	return &memstore{records: make(map[string]*Record)}
}

func (m *memstore) Save(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec.Clone()
	return nil
}

func (m *memstore) Load(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[id].Clone(), nil
}

func (m *memstore) Update(_ context.Context, id string, mutate func(*Record) error) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[id]
	if rec == nil {
		return nil, nil
	}
	cp := rec.Clone()
	if err := mutate(cp); err != nil {
		return nil, err
	}
	m.records[id] = cp.Clone()
	return cp, nil
}

func (m *memstore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memstore) Close() error { return nil }
