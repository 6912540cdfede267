package pricing

import (
	"chatcart/internal/domain/catalog"
)

// Line is the evaluator's view of one cart line: quantity actually reserved
// at the unit price locked when the reservation was taken.
type Line struct {
	SKU            string
	Qty            int
	UnitPriceCents int64
}

// Applied is one discount the evaluator selected. DiscountCents is carried
// fractionally; rounding happens once, in ComputeBill's final totals.
type Applied struct {
	RuleID        string
	Label         string
	Group         string
	DiscountCents float64
}

// Evaluate maps a cart and catalog to the applicable discount set. It is
// pure: same inputs, same output, regardless of call order or concurrency.
//
// Among rules sharing a mutual-exclusivity group only the one with the
// greatest discount applies (ties broken by lowest rule ID). Ungrouped rules
// all stack. An empty cart yields an empty set.
func Evaluate(lines []Line, snap *catalog.Snapshot) []Applied {
	if len(lines) == 0 || snap == nil {
		return nil
	}

	bestPerGroup := make(map[string]Applied)
	groupOrder := make([]string, 0)
	ungrouped := make([]Applied, 0)

	for _, rule := range snap.Rules() {
		amount, ok := ruleDiscount(rule, lines, snap)
		if !ok {
			continue
		}
		applied := Applied{
			RuleID:        rule.ID(),
			Label:         rule.Label(),
			Group:         rule.Group(),
			DiscountCents: amount,
		}
		if rule.Group() == "" {
			ungrouped = append(ungrouped, applied)
			continue
		}
		best, seen := bestPerGroup[rule.Group()]
		if !seen {
			bestPerGroup[rule.Group()] = applied
			groupOrder = append(groupOrder, rule.Group())
			continue
		}
		if applied.DiscountCents > best.DiscountCents ||
			(applied.DiscountCents == best.DiscountCents && applied.RuleID < best.RuleID) {
			bestPerGroup[rule.Group()] = applied
		}
	}

	out := make([]Applied, 0, len(groupOrder)+len(ungrouped))
	for _, group := range groupOrder {
		out = append(out, bestPerGroup[group])
	}
	out = append(out, ungrouped...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ruleDiscount returns the discount a rule would grant against the cart, or
// false when the eligibility predicate does not match.
func ruleDiscount(rule catalog.OfferRule, lines []Line, snap *catalog.Snapshot) (float64, bool) {
	pred := rule.Predicate()

	matchedQty := 0
	var matchedSubtotal int64
	for _, line := range lines {
		if !predicateMatches(pred, line.SKU, snap) {
			continue
		}
		matchedQty += line.Qty
		matchedSubtotal += int64(line.Qty) * line.UnitPriceCents
	}
	if matchedQty < pred.MinQty() {
		return 0, false
	}

	d := rule.Discount()
	if d.IsPercent() {
		return float64(matchedSubtotal) * d.PercentOff() / 100.0, true
	}
	return float64(d.AmountOffCents()), true
}

func predicateMatches(pred catalog.Predicate, sku string, snap *catalog.Snapshot) bool {
	if pred.SKU() != "" {
		return pred.SKU() == sku
	}
	product, ok := snap.Product(sku)
	if !ok {
		return false
	}
	return product.Category() == pred.Category()
}
