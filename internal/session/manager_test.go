package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour))
	ctx := context.Background()

	id, err := m.Create(ctx, Session{Token: "jwt-abc", DisplayName: "Sara"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "jwt-abc", got.Token)
	assert.Equal(t, "Sara", got.DisplayName)
}

func TestManager_GetUnknownID(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour))

	got, err := m.Get(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = m.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_Update(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour))
	ctx := context.Background()

	id, err := m.Create(ctx, Session{Token: "jwt-old", DisplayName: "Sara"})
	require.NoError(t, err)

	// Token rotation after a password change keeps the same session ID
	require.NoError(t, m.Update(ctx, id, Session{Token: "jwt-new", DisplayName: "Sara"}))

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "jwt-new", got.Token)

	assert.Error(t, m.Update(ctx, "", Session{Token: "x"}))
}

func TestManager_Clear(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour))
	ctx := context.Background()

	id, err := m.Create(ctx, Session{Token: "jwt-abc"})
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx, id))

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_SubscribeReceivesEvents(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour))
	ctx := context.Background()

	events, cancel := m.Subscribe()
	defer cancel()

	id, err := m.Create(ctx, Session{Token: "jwt-abc"})
	require.NoError(t, err)
	require.NoError(t, m.Clear(ctx, id))

	ev := <-events
	assert.Equal(t, EventSignedIn, ev.Kind)
	assert.Equal(t, id, ev.SessionID)

	ev = <-events
	assert.Equal(t, EventSignedOut, ev.Kind)
	assert.Equal(t, id, ev.SessionID)
}

func TestManager_CancelledSubscriberGetsNothing(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Hour))
	ctx := context.Background()

	events, cancel := m.Subscribe()
	cancel()
	// Cancel twice is safe
	cancel()

	_, err := m.Create(ctx, Session{Token: "jwt-abc"})
	require.NoError(t, err)

	_, open := <-events
	assert.False(t, open)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "id-1", Session{Token: "jwt"}))

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	current = current.Add(2 * time.Minute)

	got, err = store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
