package order

import (
	"time"

	"chatcart/internal/domain/pricing"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/errs"

	"github.com/google/uuid"
)

// CartLine is one product position in an order. The unit price is locked at
// reservation time so a catalog reload mid-order never drifts the bill.
type CartLine struct {
	SKU            string
	Name           string
	Requested      int
	Reserved       int
	UnitPriceCents int64
	Token          inventory.Token
}

// Order is the unit of inventory reservation and billing. It belongs to
// exactly one session; the session serializes all access, so the entity
// itself carries no locks.
type Order struct {
	id           uuid.UUID
	sessionID    string
	lines        []CartLine
	offers       []pricing.Applied
	bill         pricing.Bill
	status       Status
	createdAt    time.Time
	lastActivity time.Time
}

func NewOrder(sessionID string, now time.Time) *Order {
	return &Order{
		id:           uuid.New(),
		sessionID:    sessionID,
		status:       StatusDraft,
		createdAt:    now,
		lastActivity: now,
	}
}

func (o *Order) ID() uuid.UUID             { return o.id }
func (o *Order) SessionID() string         { return o.sessionID }
func (o *Order) Status() Status            { return o.status }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) LastActivity() time.Time   { return o.lastActivity }
func (o *Order) Offers() []pricing.Applied { return o.offers }
func (o *Order) Bill() pricing.Bill        { return o.bill }

func (o *Order) Touch(now time.Time) { o.lastActivity = now }

func (o *Order) Lines() []CartLine {
	out := make([]CartLine, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Line(sku string) (CartLine, bool) {
	for _, line := range o.lines {
		if line.SKU == sku {
			return line, true
		}
	}
	return CartLine{}, false
}

// EnsureModifiable gates cart-building intents: accepted only in Draft or
// Reserved.
func (o *Order) EnsureModifiable() error {
	if o.status.IsTerminal() {
		return errs.ErrTerminalOrder
	}
	if !o.status.IsModifiable() {
		return errs.ErrInvalidTransition
	}
	return nil
}

// UpsertLine replaces or appends a line, keeping the customer's insertion
// order stable.
func (o *Order) UpsertLine(line CartLine) {
	for i := range o.lines {
		if o.lines[i].SKU == line.SKU {
			o.lines[i] = line
			return
		}
	}
	o.lines = append(o.lines, line)
}

func (o *Order) RemoveLine(sku string) (CartLine, bool) {
	for i, line := range o.lines {
		if line.SKU == sku {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			return line, true
		}
	}
	return CartLine{}, false
}

// Tokens returns the open reservation tokens held by the cart.
func (o *Order) Tokens() []inventory.Token {
	out := make([]inventory.Token, 0, len(o.lines))
	for _, line := range o.lines {
		if !line.Token.IsZero() {
			out = append(out, line.Token)
		}
	}
	return out
}

// MarkDraft records that at least one line lost its reservation.
func (o *Order) MarkDraft() {
	if o.status.IsModifiable() {
		o.status = StatusDraft
	}
}

// MarkReserved advances to Reserved once every line holds a token.
func (o *Order) MarkReserved() {
	if !o.status.IsModifiable() {
		return
	}
	for _, line := range o.lines {
		if line.Token.IsZero() || line.Reserved != line.Requested {
			o.status = StatusDraft
			return
		}
	}
	o.status = StatusReserved
}

// BeginCheckout validates the checkout preconditions and moves to Confirmed.
// A zero-line order reports EmptyCartCheckout and stays where it is.
func (o *Order) BeginCheckout() error {
	if o.status.IsTerminal() {
		return errs.ErrTerminalOrder
	}
	if len(o.lines) == 0 {
		return errs.ErrEmptyCartCheckout
	}
	if o.status != StatusReserved {
		return errs.ErrInvalidTransition
	}
	o.status = StatusConfirmed
	return nil
}

// AbortCheckout returns a Confirmed order to Draft after a failed commit.
func (o *Order) AbortCheckout() {
	if o.status == StatusConfirmed {
		o.status = StatusDraft
	}
}

// MarkBilled finalizes the order once the bill is produced.
func (o *Order) MarkBilled(bill pricing.Bill, offers []pricing.Applied) error {
	if o.status != StatusConfirmed {
		return errs.ErrInvalidTransition
	}
	o.bill = bill
	o.offers = offers
	o.status = StatusBilled
	return nil
}

// Close moves the order to Cancelled or Expired. The caller must have
// released any open reservations first.
func (o *Order) Close(terminal Status) error {
	if terminal != StatusCancelled && terminal != StatusExpired {
		return errs.ErrInvalidTransition
	}
	if o.status.IsTerminal() {
		return errs.ErrTerminalOrder
	}
	o.status = terminal
	return nil
}

// Reprice refreshes the applied offers and running bill so the
// customer-visible total always reflects currently reserved quantities.
func (o *Order) Reprice(offers []pricing.Applied, bill pricing.Bill) {
	o.offers = offers
	o.bill = bill
}

// PricingLines projects reserved cart lines into the evaluator's input.
func (o *Order) PricingLines() []pricing.Line {
	out := make([]pricing.Line, 0, len(o.lines))
	for _, line := range o.lines {
		if line.Reserved == 0 {
			continue
		}
		out = append(out, pricing.Line{
			SKU:            line.SKU,
			Qty:            line.Reserved,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	return out
}
