package metrics

import (
	"sort"
	"sync"
)

// CallStats counts outbound backend calls per endpoint.
type CallStats struct {
	mu       sync.Mutex
	calls    map[string]int64
	failures map[string]int64
}

// EndpointUsage is a point-in-time view of one endpoint's counters.
type EndpointUsage struct {
	Endpoint string `json:"endpoint"`
	Calls    int64  `json:"calls"`
	Failures int64  `json:"failures,omitempty"`
}

// NewCallStats returns empty counters.
func NewCallStats() *CallStats {
	return &CallStats{
		calls:    make(map[string]int64),
		failures: make(map[string]int64),
	}
}

// Record counts one call and whether it failed.
func (s *CallStats) Record(endpoint string, failed bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[endpoint]++
	if failed {
		s.failures[endpoint]++
	}
}

// Calls returns the number of calls made to endpoint.
func (s *CallStats) Calls(endpoint string) int64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// Snapshot lists every endpoint seen so far, sorted by name.
func (s *CallStats) Snapshot() []EndpointUsage {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EndpointUsage, 0, len(s.calls))
	for endpoint, calls := range s.calls {
		out = append(out, EndpointUsage{Endpoint: endpoint, Calls: calls, Failures: s.failures[endpoint]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out
}
