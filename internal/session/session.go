package session

import (
	"sync"
	"time"

	"chatcart/internal/domain/order"
)

// Session is the conversational context for one customer identifier. All
// access happens while holding the session's lock (see Manager.Acquire), so
// intents within a session are strictly serialized while different sessions
// proceed in parallel.
type Session struct {
	mu         sync.Mutex
	customerID string
	active     *order.Order
	lastSeen   time.Time
	closed     bool

	// Processed intent results keyed by idempotency key. A redelivered
	// intent is re-acknowledged with the prior snapshot instead of being
	// re-applied.
	results map[string]order.Snapshot
}

func newSession(customerID string, now time.Time) *Session {
	return &Session{
		customerID: customerID,
		lastSeen:   now,
		results:    make(map[string]order.Snapshot),
	}
}

func (s *Session) CustomerID() string { return s.customerID }

func (s *Session) ActiveOrder() *order.Order { return s.active }

func (s *Session) SetActiveOrder(o *order.Order) { s.active = o }

func (s *Session) ClearActiveOrder() { s.active = nil }

func (s *Session) LastSeen() time.Time { return s.lastSeen }

func (s *Session) Touch(now time.Time) { s.lastSeen = now }

func (s *Session) CachedResult(idempotencyKey string) (order.Snapshot, bool) {
	snap, ok := s.results[idempotencyKey]
	return snap, ok
}

func (s *Session) CacheResult(idempotencyKey string, snap order.Snapshot) {
	s.results[idempotencyKey] = snap
}
