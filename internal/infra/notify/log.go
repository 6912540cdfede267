package notify

import (
	"context"
	"log/slog"

	"chatcart/internal/domain/order"
)

// LogNotifier is the default outbound hook: it records what the transport
// collaborator would deliver. Swapping in a real chat transport is a matter
// of providing another commands.Notifier.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) LowStock(_ context.Context, sku string, onHand int) {
	n.logger.Warn("low stock alert", "sku", sku, "on_hand", onHand)
}

func (n *LogNotifier) BillIssued(_ context.Context, snap order.Snapshot) {
	n.logger.Info("final bill issued",
		"order_id", snap.OrderID,
		"customer_id", snap.SessionID,
		"grand_total_cents", snap.GrandTotalCents,
	)
}
