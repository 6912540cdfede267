package session

import (
	"sync"
	"time"

	"chatcart/internal/pkg/clock"
)

// Manager is the arena of live sessions, keyed by customer identifier.
// Sessions are created lazily on first contact and torn down by the idle
// sweep; orders are owned by their session, never referenced across
// sessions, so a sweep can't leave dangling state behind.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	clock       clock.Clock
	idleTimeout time.Duration
}

func NewManager(clk clock.Clock, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		clock:       clk,
		idleTimeout: idleTimeout,
	}
}

// Acquire resolves or lazily creates the customer's session and returns it
// locked. The caller must call Release when done; until then no other
// intent for this customer makes progress.
func (m *Manager) Acquire(customerID string) *Session {
	for {
		m.mu.Lock()
		s, ok := m.sessions[customerID]
		if !ok {
			s = newSession(customerID, m.clock.Now())
			m.sessions[customerID] = s
		}
		m.mu.Unlock()

		s.mu.Lock()
		if !s.closed {
			return s
		}
		// Lost a race with the sweeper: this session was expired while
		// we waited for its lock. Drop the dead entry ourselves instead
		// of spinning until the sweep gets around to deleting it.
		s.mu.Unlock()
		m.mu.Lock()
		if cur, ok := m.sessions[customerID]; ok && cur == s {
			delete(m.sessions, customerID)
		}
		m.mu.Unlock()
	}
}

// Lookup returns the session locked, or false if the customer is unknown.
func (m *Manager) Lookup(customerID string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[customerID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, false
	}
	return s, true
}

func (m *Manager) Release(s *Session) {
	s.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep expires every session idle beyond the timeout. onExpire runs with
// the session locked and must release any reservations the active order
// still holds before the session is dropped from the arena.
func (m *Manager) Sweep(onExpire func(*Session)) int {
	now := m.clock.Now()

	m.mu.RLock()
	candidates := make([]*Session, 0)
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.RUnlock()

	expired := 0
	for _, s := range candidates {
		s.mu.Lock()
		if s.closed || now.Sub(s.lastSeen) < m.idleTimeout {
			s.mu.Unlock()
			continue
		}
		onExpire(s)
		s.closed = true
		s.mu.Unlock()

		m.mu.Lock()
		// Re-check identity: the customer may have come back and
		// gotten a fresh session while we were expiring this one.
		if m.sessions[s.customerID] == s {
			delete(m.sessions, s.customerID)
		}
		m.mu.Unlock()
		expired++
	}
	return expired
}
