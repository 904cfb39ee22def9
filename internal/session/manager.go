// internal/session/manager.go
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Event describes a session lifecycle change delivered to subscribers
type Event struct {
	SessionID string
	Kind      EventKind
}

// EventKind is the type of session event
type EventKind string

const (
	// EventSignedIn fires when a session is created
	EventSignedIn EventKind = "signed_in"
	// EventSignedOut fires when a session is cleared
	EventSignedOut EventKind = "signed_out"
)

// Manager is the single injected session-context object. Views go through it
// for every get/set/clear; components that must react to sign-out subscribe
// rather than polling shared state.
type Manager struct {
	store Store

	mu      sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// NewManager creates a session manager over the given store
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		subs:  make(map[int]chan Event),
	}
}

// Create stores a new session and returns its opaque ID for the cookie
func (m *Manager) Create(ctx context.Context, s Session) (string, error) {
	sessionID := uuid.New().String()
	if err := m.store.Set(ctx, sessionID, s); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	m.notify(Event{SessionID: sessionID, Kind: EventSignedIn})
	return sessionID, nil
}

// Get resolves a session ID. Returns (nil, nil) for unknown or expired IDs.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	return m.store.Get(ctx, sessionID)
}

// Update replaces an existing session's contents, e.g. when the upstream
// issues a fresh token after a password change
func (m *Manager) Update(ctx context.Context, sessionID string, s Session) error {
	if sessionID == "" {
		return fmt.Errorf("update session: missing session id")
	}
	return m.store.Set(ctx, sessionID, s)
}

// Clear removes a session and notifies subscribers of the sign-out
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	if err := m.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.notify(Event{SessionID: sessionID, Kind: EventSignedOut})
	return nil
}

// Subscribe registers for session events. The returned cancel func must be
// called to release the subscription. Delivery is best-effort: a subscriber
// that is not draining its channel misses events rather than blocking
// sign-in/sign-out.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Event, 8)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
