package probe

import (
	"fmt"
	"sync"

	"github.com/forgecut/forgecut/internal/timeline"
)

// Static is a canned prober keyed by path, for tests and offline use.
type Static struct {
	mu      sync.Mutex
	results map[string]timeline.ProbeResult
	calls   []string
}

// NewStatic builds a Static with the given results.
func NewStatic(results map[string]timeline.ProbeResult) *Static {
	m := make(map[string]timeline.ProbeResult, len(results))
	for k, v := range results {
		m[k] = v
	}
	return &Static{results: m}
}

// Set registers or replaces the result for path.
func (s *Static) Set(path string, r timeline.ProbeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		s.results = make(map[string]timeline.ProbeResult)
	}
	s.results[path] = r
}

// Probe returns the canned result for path, or an error for unknown
// paths.
func (s *Static) Probe(path string) (timeline.ProbeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, path)
	r, ok := s.results[path]
	if !ok {
		return timeline.ProbeResult{}, fmt.Errorf("no probe result registered for %s", path)
	}
	return r, nil
}

// Calls returns the paths probed so far, in order.
func (s *Static) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}
