package commands

import (
	"context"
	"log/slog"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/domain/order"
	"chatcart/internal/domain/pricing"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/clock"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/session"
)

// HandleResult carries the outbound snapshot. Replayed marks an idempotent
// redelivery that was answered from the session's result cache.
type HandleResult struct {
	Snapshot order.Snapshot
	Replayed bool
}

type IntentCommands interface {
	Handle(ctx context.Context, customerID string, intent order.Intent) (*HandleResult, error)
}

type intentCommandsImpl struct {
	sessions *session.Manager
	ledger   *inventory.Ledger
	catalog  *catalog.Store
	archiver Archiver
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
	lowStock int
}

func NewIntentCommands(
	sessions *session.Manager,
	ledger *inventory.Ledger,
	catalogStore *catalog.Store,
	archiver Archiver,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
	lowStockThreshold int,
) IntentCommands {
	return &intentCommandsImpl{
		sessions: sessions,
		ledger:   ledger,
		catalog:  catalogStore,
		archiver: archiver,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
		lowStock: lowStockThreshold,
	}
}

// Handle routes one structured intent to the customer's order. Intents for
// the same customer run strictly one at a time; intents for different
// customers only meet at the inventory ledger.
func (u *intentCommandsImpl) Handle(ctx context.Context, customerID string, intent order.Intent) (*HandleResult, error) {
	if customerID == "" {
		return nil, errs.Mark(errs.New("empty customer id"), errs.ErrUnknownSession)
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	s := u.sessions.Acquire(customerID)
	defer u.sessions.Release(s)

	if cached, ok := s.CachedResult(intent.IdempotencyKey); ok {
		return &HandleResult{Snapshot: cached, Replayed: true}, nil
	}

	o, err := u.resolveOrder(s, intent)
	if err != nil {
		return nil, err
	}

	switch intent.Type {
	case order.IntentAddItem:
		err = u.addItem(o, intent)
	case order.IntentChangeQty:
		err = u.setQuantity(o, intent.SKU, intent.Qty)
	case order.IntentRemoveItem:
		err = u.removeItem(o, intent.SKU)
	case order.IntentRequestCheckout:
		err = u.checkout(ctx, o)
	case order.IntentCancel:
		err = u.cancel(o, order.StatusCancelled)
	}
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	s.Touch(now)
	o.Touch(now)

	snap := o.Snapshot()
	s.CacheResult(intent.IdempotencyKey, snap)
	return &HandleResult{Snapshot: snap}, nil
}

// resolveOrder finds the session's active order, opening one implicitly for
// cart-building intents. Intents aimed at a finished order fail with a
// terminal-state error unless they start a fresh cart.
func (u *intentCommandsImpl) resolveOrder(s *session.Session, intent order.Intent) (*order.Order, error) {
	active := s.ActiveOrder()
	if active == nil {
		if !intent.Type.IsCartBuilding() {
			return nil, errs.ErrNoActiveOrder
		}
		o := order.NewOrder(s.CustomerID(), u.clock.Now())
		s.SetActiveOrder(o)
		return o, nil
	}
	if active.Status().IsTerminal() {
		if !intent.Type.IsCartBuilding() {
			return nil, errs.ErrTerminalOrder
		}
		o := order.NewOrder(s.CustomerID(), u.clock.Now())
		s.SetActiveOrder(o)
		return o, nil
	}
	return active, nil
}

func (u *intentCommandsImpl) addItem(o *order.Order, intent order.Intent) error {
	qty := intent.Qty
	if existing, ok := o.Line(intent.SKU); ok {
		qty += existing.Requested
	}
	return u.setQuantity(o, intent.SKU, qty)
}

// setQuantity re-runs the line's reservation: the stale token is released
// first, then the full new quantity is claimed. A failed claim leaves the
// order in Draft with the shortfall reported; the quantity is never silently
// clamped.
func (u *intentCommandsImpl) setQuantity(o *order.Order, sku string, qty int) error {
	if err := o.EnsureModifiable(); err != nil {
		return err
	}

	snap := u.catalog.Current()
	product, ok := snap.Product(sku)
	if !ok {
		return errs.Mark(errs.Newf("sku %q", sku), errs.ErrUnknownProduct)
	}

	line, exists := o.Line(sku)
	if !exists {
		// Price locks at first reservation of the line.
		line = order.CartLine{SKU: sku, Name: product.Name(), UnitPriceCents: product.PriceCents()}
	}

	if !line.Token.IsZero() {
		if err := u.ledger.Release(line.Token); err != nil {
			return err
		}
		line.Token = inventory.Token{}
		line.Reserved = 0
	}

	line.Requested = qty
	token, err := u.ledger.Reserve(sku, qty)
	if err != nil {
		o.UpsertLine(line)
		o.MarkDraft()
		u.reprice(o)
		return err
	}
	line.Token = token
	line.Reserved = qty
	o.UpsertLine(line)
	o.MarkReserved()
	u.reprice(o)
	return nil
}

func (u *intentCommandsImpl) removeItem(o *order.Order, sku string) error {
	if err := o.EnsureModifiable(); err != nil {
		return err
	}
	line, ok := o.RemoveLine(sku)
	if !ok {
		return errs.Mark(errs.Newf("sku %q", sku), errs.ErrLineNotFound)
	}
	if !line.Token.IsZero() {
		if err := u.ledger.Release(line.Token); err != nil {
			return err
		}
	}
	o.MarkReserved()
	u.reprice(o)
	return nil
}

// checkout verifies the reservation set is still intact, commits every
// token exactly once, reprices from the committed cart and issues the final
// bill. Archive and notification handoffs are fire-and-forget.
func (u *intentCommandsImpl) checkout(ctx context.Context, o *order.Order) error {
	if err := o.BeginCheckout(); err != nil {
		return err
	}

	if err := u.ledger.CommitAll(o.Tokens()); err != nil {
		o.AbortCheckout()
		return err
	}

	lines := o.PricingLines()
	offers := pricing.Evaluate(lines, u.catalog.Current())
	bill := pricing.ComputeBill(lines, offers)
	if err := o.MarkBilled(bill, offers); err != nil {
		return err
	}

	snap := o.Snapshot()
	go u.archive(snap)
	if u.notifier != nil {
		go u.notifier.BillIssued(context.WithoutCancel(ctx), snap)
	}
	u.alertLowStock(ctx, o)
	return nil
}

func (u *intentCommandsImpl) cancel(o *order.Order, terminal order.Status) error {
	if o.Status().IsTerminal() {
		return errs.ErrTerminalOrder
	}
	// Reservations are handed back before the order goes terminal so stock
	// is never left phantom-reserved.
	for _, token := range o.Tokens() {
		if err := u.ledger.Release(token); err != nil {
			return err
		}
	}
	return o.Close(terminal)
}

func (u *intentCommandsImpl) reprice(o *order.Order) {
	lines := o.PricingLines()
	offers := pricing.Evaluate(lines, u.catalog.Current())
	o.Reprice(offers, pricing.ComputeBill(lines, offers))
}

func (u *intentCommandsImpl) archive(snap order.Snapshot) {
	if u.archiver == nil {
		return
	}
	if err := u.archiver.SaveBill(context.Background(), snap); err != nil {
		u.logger.Error("order archive failed", "order_id", snap.OrderID, "error", err)
	}
}

func (u *intentCommandsImpl) alertLowStock(ctx context.Context, o *order.Order) {
	if u.notifier == nil || u.lowStock <= 0 {
		return
	}
	for _, line := range o.Lines() {
		level, err := u.ledger.Level(line.SKU)
		if err != nil {
			continue
		}
		if level.OnHand < u.lowStock {
			go u.notifier.LowStock(context.WithoutCancel(ctx), line.SKU, level.OnHand)
		}
	}
}
