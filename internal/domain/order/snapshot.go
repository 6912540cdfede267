package order

import (
	"time"

	"github.com/google/uuid"
)

// LineView is one cart line as handed to the transport collaborator.
type LineView struct {
	SKU            string
	Name           string
	Requested      int
	Reserved       int
	UnitPriceCents int64
	TotalCents     int64
}

// OfferView names an applied discount. The amount is rounded for display
// only; bill totals never sum these.
type OfferView struct {
	RuleID        string
	Label         string
	DiscountCents int64
}

// Snapshot is the outbound view of an order: cart lines, applied offers and
// the running (or final) totals. The engine hands it to the transport layer
// and never formats chat messages itself.
type Snapshot struct {
	OrderID         uuid.UUID
	SessionID       string
	Status          Status
	Lines           []LineView
	Offers          []OfferView
	SubtotalCents   int64
	DiscountCents   int64
	GrandTotalCents int64
	CreatedAt       time.Time
	LastActivity    time.Time
}

func (o *Order) Snapshot() Snapshot {
	snap := Snapshot{
		OrderID:         o.id,
		SessionID:       o.sessionID,
		Status:          o.status,
		SubtotalCents:   o.bill.SubtotalCents,
		DiscountCents:   o.bill.DiscountCents,
		GrandTotalCents: o.bill.GrandTotalCents,
		CreatedAt:       o.createdAt,
		LastActivity:    o.lastActivity,
	}
	for _, line := range o.lines {
		snap.Lines = append(snap.Lines, LineView{
			SKU:            line.SKU,
			Name:           line.Name,
			Requested:      line.Requested,
			Reserved:       line.Reserved,
			UnitPriceCents: line.UnitPriceCents,
			TotalCents:     int64(line.Reserved) * line.UnitPriceCents,
		})
	}
	for _, offer := range o.offers {
		snap.Offers = append(snap.Offers, OfferView{
			RuleID:        offer.RuleID,
			Label:         offer.Label,
			DiscountCents: int64(offer.DiscountCents + 0.5),
		})
	}
	return snap
}

func (s Snapshot) IsFinalBill() bool { return s.Status == StatusBilled }
