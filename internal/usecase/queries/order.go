package queries

import (
	"context"

	"chatcart/internal/domain/order"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/session"
)

// OrderQueries is the read side: current cart state for a customer, without
// mutating anything.
type OrderQueries interface {
	GetActive(ctx context.Context, customerID string) (*order.Snapshot, error)
}

type orderQueriesImpl struct {
	sessions *session.Manager
}

func NewOrderQueries(sessions *session.Manager) OrderQueries {
	return &orderQueriesImpl{sessions: sessions}
}

func (q *orderQueriesImpl) GetActive(_ context.Context, customerID string) (*order.Snapshot, error) {
	s, ok := q.sessions.Lookup(customerID)
	if !ok {
		return nil, errs.ErrUnknownSession
	}
	defer q.sessions.Release(s)

	o := s.ActiveOrder()
	if o == nil {
		return nil, errs.ErrNoActiveOrder
	}
	snap := o.Snapshot()
	return &snap, nil
}
