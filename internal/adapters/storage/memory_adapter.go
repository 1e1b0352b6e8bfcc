package storage

import (
	"context"
	"sync"
	"time"

	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryAdapter is a process-local KeyValueStore used when Redis is unavailable.
// Values do not survive a restart.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryAdapter creates an empty in-memory store
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

// Get retrieves a value, treating expired entries as missing
func (m *MemoryAdapter) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok || (!entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)) {
		return "", providers.ErrKeyNotFound
	}
	return entry.value, nil
}

// Set stores a value
func (m *MemoryAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes a value
func (m *MemoryAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored keys, including expired ones not yet overwritten
func (m *MemoryAdapter) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
