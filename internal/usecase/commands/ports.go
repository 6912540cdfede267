package commands

import (
	"context"

	"chatcart/internal/domain/order"
)

// Archiver persists final bills. Checkout hands the snapshot off and moves
// on; a failing archive is logged, never surfaced to the customer.
type Archiver interface {
	SaveBill(ctx context.Context, snap order.Snapshot) error
}

// Notifier is the outbound hook to the transport collaborator for proactive
// messages (owner alerts, final bills). Implementations must not block the
// intent path.
type Notifier interface {
	LowStock(ctx context.Context, sku string, onHand int)
	BillIssued(ctx context.Context, snap order.Snapshot)
}
