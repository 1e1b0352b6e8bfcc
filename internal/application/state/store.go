package state

import "sync"

// Store owns one session's ViewState. The lock is held only while an update
// function runs, never across upstream I/O.
type Store struct {
	mu      sync.Mutex
	current ViewState
	seq     *Sequencer
	onStale func(Resource)
}

// NewStore creates a store holding New(). onStale, when set, is called for
// every discarded response.
func NewStore(onStale func(Resource)) *Store {
	return &Store{
		current: New(),
		seq:     NewSequencer(),
		onStale: onStale,
	}
}

// Snapshot returns the current state
func (s *Store) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn and returns the resulting state
func (s *Store) Update(fn func(ViewState) ViewState) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = fn(s.current)
	return s.current
}

// Reset replaces the state with New(), as on a page load. Requests issued
// before the reset can no longer commit.
func (s *Store) Reset() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.SupersedeAll()
	s.current = New()
	return s.current
}

// Begin issues a ticket for a request about to be sent
func (s *Store) Begin(r Resource) Ticket {
	return s.seq.Begin(r)
}

// Commit applies fn only if t is still the latest ticket for its resource.
// It reports whether the response was applied.
func (s *Store) Commit(t Ticket, fn func(ViewState) ViewState) bool {
	s.mu.Lock()
	if !s.seq.IsLatest(t) {
		s.mu.Unlock()
		if s.onStale != nil {
			s.onStale(t.Resource)
		}
		return false
	}
	s.current = fn(s.current)
	s.mu.Unlock()
	return true
}
