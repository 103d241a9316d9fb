package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/phonestore/internal/cart/domain"
)

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(time.Hour)

	require.NoError(t, s.Update(ctx, "a", func(c *domain.Cart) { c.Add(domain.Item{Title: "Hot 50"}) }))
	require.NoError(t, s.Update(ctx, "b", func(c *domain.Cart) {}))

	var aLen, bLen int
	require.NoError(t, s.View(ctx, "a", func(c *domain.Cart) { aLen = c.Len() }))
	require.NoError(t, s.View(ctx, "b", func(c *domain.Cart) { bLen = c.Len() }))
	assert.Equal(t, 1, aLen)
	assert.Equal(t, 0, bLen)
	assert.Equal(t, 2, s.Len())
}

func TestSweepDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore(30 * time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Update(ctx, "old", func(c *domain.Cart) { c.Add(domain.Item{Title: "x"}) }))
	now = now.Add(20 * time.Minute)
	require.NoError(t, s.Update(ctx, "fresh", func(c *domain.Cart) {}))
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	// an expired session comes back empty
	var n int
	require.NoError(t, s.View(ctx, "old", func(c *domain.Cart) { n = c.Len() }))
	assert.Zero(t, n)
}

func TestDrop(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(0)
	require.NoError(t, s.Update(ctx, "a", func(c *domain.Cart) {}))
	require.NoError(t, s.Drop(ctx, "a"))
	require.NoError(t, s.Drop(ctx, "a"))
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Sweep())
}

func TestUpdateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSessionStore(time.Hour)
	called := false
	err := s.Update(ctx, "a", func(c *domain.Cart) { called = true })
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewSessionStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond, nil) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
