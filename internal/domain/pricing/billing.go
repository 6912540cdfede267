package pricing

import "math"

// LineTotal is the per-line breakdown of a bill. Line amounts are exact
// integer cents; no intermediate rounding ever happens here.
type LineTotal struct {
	SKU            string
	Qty            int
	UnitPriceCents int64
	TotalCents     int64
}

// Bill is an itemized total in integer cents, reported to two decimal
// places. Half-up rounding is applied once, at the grand total; the discount
// total is then derived so that subtotal - discount == grand total exactly.
type Bill struct {
	SubtotalCents   int64
	DiscountCents   int64
	GrandTotalCents int64
	Lines           []LineTotal
	Offers          []Applied
}

// ComputeBill prices a cart under an applied offer set. Pure and
// deterministic. The grand total is floored at zero; a discount can never
// invert the bill's sign.
func ComputeBill(lines []Line, offers []Applied) Bill {
	bill := Bill{
		Lines:  make([]LineTotal, 0, len(lines)),
		Offers: offers,
	}

	for _, line := range lines {
		total := int64(line.Qty) * line.UnitPriceCents
		bill.SubtotalCents += total
		bill.Lines = append(bill.Lines, LineTotal{
			SKU:            line.SKU,
			Qty:            line.Qty,
			UnitPriceCents: line.UnitPriceCents,
			TotalCents:     total,
		})
	}

	var discount float64
	for _, offer := range offers {
		discount += offer.DiscountCents
	}

	grand := float64(bill.SubtotalCents) - discount
	if grand < 0 {
		grand = 0
	}
	bill.GrandTotalCents = roundHalfUp(grand)
	bill.DiscountCents = bill.SubtotalCents - bill.GrandTotalCents
	return bill
}

func roundHalfUp(cents float64) int64 {
	return int64(math.Floor(cents + 0.5))
}
