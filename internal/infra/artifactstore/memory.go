package artifactstore

import (
	"context"
	"sync"

	"github.com/yanqian/healthdash/internal/domain/report"
)

// MemoryStore keeps exported artifacts in memory. Useful for tests and the CLI.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]report.Artifact
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]report.Artifact)}
}

// Save replaces any artifact with the same name.
func (s *MemoryStore) Save(_ context.Context, artifact report.Artifact) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	artifact.Data = append([]byte(nil), artifact.Data...)
	s.items[artifact.Name] = artifact
	return "memory://" + artifact.Name, nil
}

// Get returns a stored artifact by name.
func (s *MemoryStore) Get(name string) (report.Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[name]
	return a, ok
}

var _ report.Sink = (*MemoryStore)(nil)
