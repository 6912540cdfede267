//go:build unit

package session

import (
	"testing"
	"time"

	"chatcart/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reproduces the window where the sweep has closed a session but not yet
// deleted it from the arena. Acquire must evict the dead entry and hand out
// a fresh session instead of waiting for the sweep to finish.
func TestAcquireEvictsClosedSession(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	m := NewManager(clk, 30*time.Minute)

	stale := m.Acquire("cust-1")
	m.Release(stale)

	stale.mu.Lock()
	stale.closed = true
	stale.mu.Unlock()

	fresh := m.Acquire("cust-1")
	require.NotNil(t, fresh)
	assert.NotSame(t, stale, fresh)
	assert.False(t, fresh.closed)
	m.Release(fresh)

	assert.Equal(t, 1, m.Len())
}
