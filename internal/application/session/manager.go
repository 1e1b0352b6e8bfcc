package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
)

// Session is one browser's dashboard state and token namespace
type Session struct {
	ID     string
	Store  *state.Store
	Tokens *services.TokenStore

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager keeps sessions in memory for the process lifetime. Tokens live in
// the key-value store, so a session evicted here keeps its login.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	kv          providers.KeyValueStore
	metrics     *observability.Metrics
	idleTimeout time.Duration
	now         func() time.Time
}

// NewManager creates a session manager
func NewManager(kv providers.KeyValueStore, metrics *observability.Metrics, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		kv:          kv,
		metrics:     metrics,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session for id, creating it on first use
func (m *Manager) Get(id string) *Session {
	now := m.now()

	m.mu.Lock()
	sess, ok := m.sessions[id]
	if !ok {
		sess = &Session{
			ID:     id,
			Tokens: services.NewTokenStore(m.kv, id),
		}
		sess.Store = state.NewStore(m.staleRecorder())
		m.sessions[id] = sess
	}
	m.mu.Unlock()

	sess.touch(now)
	return sess
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the idle timeout
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if sess.idleSince(now) > m.idleTimeout {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper sweeps every interval until ctx is cancelled. A non-positive
// interval disables sweeping.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Warn().Dur("interval", interval).Msg("Session sweeper disabled")
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping session sweeper")
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Debug().Int("removed", n).Int("remaining", m.Len()).Msg("Swept idle sessions")
				}
			}
		}
	}()
}

func (m *Manager) staleRecorder() func(state.Resource) {
	return func(r state.Resource) {
		observability.RecordStaleResponse(context.Background(), m.metrics, string(r))
		log.Debug().Str("resource", string(r)).Msg("Discarded superseded response")
	}
}
