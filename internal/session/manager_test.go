//go:build unit

package session_test

import (
	"testing"
	"time"

	"chatcart/internal/domain/order"
	"chatcart/internal/pkg/clock"
	"chatcart/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*session.Manager, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return session.NewManager(clk, 30*time.Minute), clk
}

func TestManagerAcquire(t *testing.T) {
	t.Run("lazily creates on first contact", func(t *testing.T) {
		m, _ := newManager(t)
		assert.Equal(t, 0, m.Len())

		s := m.Acquire("cust-1")
		assert.Equal(t, "cust-1", s.CustomerID())
		m.Release(s)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("same customer resolves to the same session", func(t *testing.T) {
		m, _ := newManager(t)
		s1 := m.Acquire("cust-1")
		m.Release(s1)
		s2 := m.Acquire("cust-1")
		m.Release(s2)
		assert.Same(t, s1, s2)
	})
}

func TestManagerLookup(t *testing.T) {
	m, _ := newManager(t)

	_, ok := m.Lookup("cust-unknown")
	assert.False(t, ok)

	s := m.Acquire("cust-1")
	m.Release(s)

	found, ok := m.Lookup("cust-1")
	require.True(t, ok)
	assert.Same(t, s, found)
	m.Release(found)
}

func TestManagerSweep(t *testing.T) {
	t.Run("expires only sessions idle past the timeout", func(t *testing.T) {
		m, clk := newManager(t)

		stale := m.Acquire("cust-stale")
		m.Release(stale)

		clk.Add(29 * time.Minute)
		fresh := m.Acquire("cust-fresh")
		fresh.Touch(clk.Now())
		m.Release(fresh)

		clk.Add(time.Minute)

		expired := 0
		n := m.Sweep(func(*session.Session) { expired++ })
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, expired)
		assert.Equal(t, 1, m.Len())

		_, ok := m.Lookup("cust-stale")
		assert.False(t, ok)
		s, ok := m.Lookup("cust-fresh")
		require.True(t, ok)
		m.Release(s)
	})

	t.Run("touch resets the idle clock", func(t *testing.T) {
		m, clk := newManager(t)

		s := m.Acquire("cust-1")
		m.Release(s)

		clk.Add(20 * time.Minute)
		s = m.Acquire("cust-1")
		s.Touch(clk.Now())
		m.Release(s)

		clk.Add(20 * time.Minute)
		assert.Equal(t, 0, m.Sweep(func(*session.Session) {}))

		clk.Add(10 * time.Minute)
		assert.Equal(t, 1, m.Sweep(func(*session.Session) {}))
	})

	t.Run("customer returning after expiry gets a fresh session", func(t *testing.T) {
		m, clk := newManager(t)

		old := m.Acquire("cust-1")
		old.SetActiveOrder(order.NewOrder("cust-1", clk.Now()))
		m.Release(old)

		clk.Add(time.Hour)
		require.Equal(t, 1, m.Sweep(func(*session.Session) {}))

		fresh := m.Acquire("cust-1")
		assert.NotSame(t, old, fresh)
		assert.Nil(t, fresh.ActiveOrder())
		m.Release(fresh)
	})
}

func TestSessionResultCache(t *testing.T) {
	m, clk := newManager(t)
	s := m.Acquire("cust-1")
	defer m.Release(s)

	_, ok := s.CachedResult("key-1")
	assert.False(t, ok)

	o := order.NewOrder("cust-1", clk.Now())
	snap := o.Snapshot()
	s.CacheResult("key-1", snap)

	got, ok := s.CachedResult("key-1")
	require.True(t, ok)
	assert.Equal(t, snap.OrderID, got.OrderID)
}
