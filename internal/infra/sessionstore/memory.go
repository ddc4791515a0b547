package sessionstore

import (
	"context"
	"sync"

	"github.com/yanqian/healthdash/internal/domain/session"
)

// MemoryStore keeps the session in process memory. Useful for tests and local dev.
type MemoryStore struct {
	mu     sync.RWMutex
	record session.Record
	found  bool
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (session.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record, s.found, nil
}

func (s *MemoryStore) Save(_ context.Context, record session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record
	s.found = true
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = session.Record{}
	s.found = false
	return nil
}

var _ session.Store = (*MemoryStore)(nil)
