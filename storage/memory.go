package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage implements Storage in-memory (for tests and throwaway runs)
type MemoryStorage struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[uuid.UUID]*Record)}
}

func (m *MemoryStorage) SaveRecord(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	cp.Tools = append([]string(nil), rec.Tools...)
	m.records[rec.ID] = &cp
	return nil
}

func (m *MemoryStorage) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStorage) ListRecords(ctx context.Context, agent string, limit int) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Record
	for _, rec := range m.records {
		if agent != "" && rec.Agent != agent {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStorage) Close() error { return nil }
