// internal/session/memory_store.go
package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store used in tests and local
// development without Redis. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a session, returning (nil, nil) when none exists
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, sessionID)
		m.mu.Unlock()
		return nil, nil
	}

	s := entry.session
	return &s, nil
}

// Set stores a session under the given ID, resetting its TTL
func (m *MemoryStore) Set(_ context.Context, sessionID string, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = memoryEntry{
		session:   s,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

// Clear removes a session
func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}
