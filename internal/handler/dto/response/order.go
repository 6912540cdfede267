package response

import (
	"time"

	"chatcart/internal/domain/order"
	"chatcart/internal/domain/pricing"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Reserved  int    `json:"reserved"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type AppliedOfferResponse struct {
	RuleID   string `json:"ruleId"`
	Label    string `json:"label"`
	Discount string `json:"discount"`
}

// OrderSnapshotResponse is the transport-facing view of a cart or final
// bill. Amounts are fixed two-decimal strings.
type OrderSnapshotResponse struct {
	OrderID       uuid.UUID              `json:"orderId"`
	CustomerID    string                 `json:"customerId"`
	Status        string                 `json:"status"`
	Lines         []CartLineResponse     `json:"lines"`
	Offers        []AppliedOfferResponse `json:"offers"`
	Subtotal      string                 `json:"subtotal"`
	DiscountTotal string                 `json:"discountTotal"`
	GrandTotal    string                 `json:"grandTotal"`
	FinalBill     bool                   `json:"finalBill"`
	Replayed      bool                   `json:"replayed,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

func FromSnapshot(snap order.Snapshot, replayed bool) *OrderSnapshotResponse {
	resp := &OrderSnapshotResponse{
		OrderID:       snap.OrderID,
		CustomerID:    snap.SessionID,
		Status:        snap.Status.String(),
		Lines:         make([]CartLineResponse, 0, len(snap.Lines)),
		Offers:        make([]AppliedOfferResponse, 0, len(snap.Offers)),
		Subtotal:      pricing.FormatCents(snap.SubtotalCents),
		DiscountTotal: pricing.FormatCents(snap.DiscountCents),
		GrandTotal:    pricing.FormatCents(snap.GrandTotalCents),
		FinalBill:     snap.IsFinalBill(),
		Replayed:      replayed,
		CreatedAt:     snap.CreatedAt,
	}
	for _, line := range snap.Lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			SKU:       line.SKU,
			Name:      line.Name,
			Requested: line.Requested,
			Reserved:  line.Reserved,
			UnitPrice: pricing.FormatCents(line.UnitPriceCents),
			LineTotal: pricing.FormatCents(line.TotalCents),
		})
	}
	for _, offer := range snap.Offers {
		resp.Offers = append(resp.Offers, AppliedOfferResponse{
			RuleID:   offer.RuleID,
			Label:    offer.Label,
			Discount: pricing.FormatCents(offer.DiscountCents),
		})
	}
	return resp
}
