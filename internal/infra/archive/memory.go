package archive

import (
	"context"
	"sync"

	"chatcart/internal/domain/order"

	"github.com/google/uuid"
)

// MemoryArchiver keeps bills in memory. Used in tests and when no database
// is configured.
type MemoryArchiver struct {
	mu    sync.Mutex
	bills map[uuid.UUID]order.Snapshot
}

func NewMemoryArchiver() *MemoryArchiver {
	return &MemoryArchiver{bills: make(map[uuid.UUID]order.Snapshot)}
}

func (a *MemoryArchiver) SaveBill(_ context.Context, snap order.Snapshot) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.bills[snap.OrderID]; !ok {
		a.bills[snap.OrderID] = snap
	}
	return nil
}

func (a *MemoryArchiver) Bills() []order.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]order.Snapshot, 0, len(a.bills))
	for _, snap := range a.bills {
		out = append(out, snap)
	}
	return out
}

func (a *MemoryArchiver) Bill(orderID uuid.UUID) (order.Snapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap, ok := a.bills[orderID]
	return snap, ok
}
