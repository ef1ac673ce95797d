package settings

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It backs unit tests and
// local development runs that have no Redis available. The snapshot replace
// is atomic under a mutex, matching the transactional replace the Redis
// implementation performs.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory settings store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// ReadSnapshot returns a copy of the current snapshot
func (s *MemoryStore) ReadSnapshot(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]string, len(s.data))
	maps.Copy(snapshot, s.data)
	return snapshot, nil
}

// WriteSnapshot replaces the stored settings with the given snapshot
func (s *MemoryStore) WriteSnapshot(_ context.Context, snapshot map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]string, len(snapshot))
	maps.Copy(s.data, snapshot)
	return nil
}

// GetFresh reads a single field from the current snapshot
func (s *MemoryStore) GetFresh(_ context.Context, field string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[field]
	return value, ok, nil
}
