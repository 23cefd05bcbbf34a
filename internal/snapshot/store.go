package snapshot

import (
	"context"
	"sync"
)

// Snapshots maps stable snapshot names to their serialized values.
type Snapshots map[string]string

// Clone returns a copy of s.
func (s Snapshots) Clone() Snapshots {
	out := make(Snapshots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Store persists snapshots between runs.
type Store interface {
	// Load returns the persisted baseline. A store that has never been saved
	// returns an empty set, not an error.
	Load(ctx context.Context) (Snapshots, error)
	// Save replaces the persisted baseline with s.
	Save(ctx context.Context, s Snapshots) error
}

// MemoryStore keeps snapshots in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data Snapshots
}

// NewMemoryStore returns a store seeded with baseline.
func NewMemoryStore(baseline Snapshots) *MemoryStore {
	return &MemoryStore{data: baseline.Clone()}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context) (Snapshots, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.Clone(), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, s Snapshots) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = s.Clone()
	return nil
}
