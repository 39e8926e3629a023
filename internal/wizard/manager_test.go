package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetChecksOwner(t *testing.T) {
	h := newHarness()
	s := startSession(t, h)

	got, err := h.manager.Get(s.ID(), testUser)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = h.manager.Get(s.ID(), testUser+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = h.manager.Get("missing", testUser)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerClose(t *testing.T) {
	h := newHarness()
	s := startSession(t, h)
	require.Equal(t, 1, h.metrics.active)

	assert.ErrorIs(t, h.manager.Close(s.ID(), testUser+1), ErrAccessDenied)
	require.NoError(t, h.manager.Close(s.ID(), testUser))

	_, err := h.manager.Get(s.ID(), testUser)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, h.manager.Active())
	assert.Equal(t, 0, h.metrics.active)
}

func TestManagerSweepEvictsIdleSessions(t *testing.T) {
	h := newHarness()
	idle := startSession(t, h)

	h.clock.Add(20 * time.Minute)
	busy := startSession(t, h)

	h.clock.Add(15 * time.Minute)
	_, err := busy.Advance()
	require.NoError(t, err)

	assert.Equal(t, 1, h.manager.Sweep(h.clock.Now()))

	_, err = h.manager.Get(idle.ID(), testUser)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = h.manager.Get(busy.ID(), testUser)
	assert.NoError(t, err)
}

func TestManagerShutdown(t *testing.T) {
	h := newHarness()
	for i := 0; i < 3; i++ {
		_, err := h.manager.Start(context.Background(), testUser, testCleaner)
		require.NoError(t, err)
	}
	require.Equal(t, 3, h.manager.Active())

	h.manager.Shutdown()
	assert.Equal(t, 0, h.manager.Active())
}
