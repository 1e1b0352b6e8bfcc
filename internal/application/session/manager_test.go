package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euprava/vrtic-dashboard/internal/adapters/storage"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
)

func TestManager_GetReturnsSameSession(t *testing.T) {
	m := NewManager(storage.NewMemoryAdapter(), nil, time.Hour)
	id := NewID()

	a := m.Get(id)
	b := m.Get(id)
	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, state.New(), a.Store.Snapshot())
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("../../etc"))
}

func TestManager_SweepKeepsTokens(t *testing.T) {
	kv := storage.NewMemoryAdapter()
	m := NewManager(kv, nil, time.Minute)
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	idle := m.Get("idle")
	require.NoError(t, kv.Set(context.Background(), "vrtic:session:idle:access_token", "x", 0))
	idle.Store.Update(func(s state.ViewState) state.ViewState { return state.WithFormStatus(s, "draft") })

	now = now.Add(30 * time.Second)
	m.Get("active")

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	// state is gone, the stored token is not
	assert.Empty(t, m.Get("idle").Store.Snapshot().FormStatus)
	v, err := kv.Get(context.Background(), "vrtic:session:idle:access_token")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestManager_StaleResponsesAreCounted(t *testing.T) {
	m := NewManager(storage.NewMemoryAdapter(), nil, time.Hour)
	sess := m.Get(NewID())

	older := sess.Store.Begin(state.ResourceReport)
	sess.Store.Begin(state.ResourceReport)
	assert.False(t, sess.Store.Commit(older, func(s state.ViewState) state.ViewState { return s }))
}

func TestManager_StartSweeperStopsOnCancel(t *testing.T) {
	m := NewManager(storage.NewMemoryAdapter(), nil, time.Nanosecond)
	m.Get("a")

	ctx, cancel := context.WithCancel(context.Background())
	m.StartSweeper(ctx, time.Millisecond)

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
}
