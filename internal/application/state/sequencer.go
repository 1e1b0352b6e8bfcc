package state

import "sync"

// Resource is a logical upstream resource whose responses are ordered
type Resource string

const (
	ResourceFacilities Resource = "facilities"
	ResourceCritical   Resource = "critical"
	ResourceReport     Resource = "report"
	ResourceProfile    Resource = "profile"
	// ResourceConnectivity is the probe of the facility service root
	ResourceConnectivity Resource = "connectivity"
)

// Resources lists every sequenced resource
var Resources = []Resource{ResourceFacilities, ResourceCritical, ResourceReport, ResourceProfile, ResourceConnectivity}

// Ticket identifies one issued request
type Ticket struct {
	Resource Resource
	seq      uint64
}

// Sequencer hands out monotonically increasing tickets per resource so that
// only the most recently issued request may update state.
type Sequencer struct {
	mu     sync.Mutex
	latest map[Resource]uint64
}

// NewSequencer creates an empty sequencer
func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[Resource]uint64)}
}

// Begin issues the next ticket for r, superseding all earlier ones
func (s *Sequencer) Begin(r Resource) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[r]++
	return Ticket{Resource: r, seq: s.latest[r]}
}

// IsLatest reports whether no newer ticket was issued for t's resource
func (s *Sequencer) IsLatest(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[t.Resource] == t.seq
}

// SupersedeAll advances every resource, so no ticket issued so far is latest
func (s *Sequencer) SupersedeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range Resources {
		s.latest[r]++
	}
}
