package catalog

import "errors"

var (
	ErrEmptyRuleID       = errors.New("offer rule id cannot be empty")
	ErrEmptyPredicate    = errors.New("offer rule needs a sku or category predicate")
	ErrInvalidPercentOff = errors.New("percent off must be between 0 and 100")
	ErrNegativeAmountOff = errors.New("amount off cannot be negative")
	ErrEmptyDiscount     = errors.New("offer rule needs a percent or amount discount")
)

// Predicate describes which carts an offer rule applies to: a SKU or a
// category (exactly one set) plus a minimum total quantity of matching lines.
type Predicate struct {
	sku      string
	category string
	minQty   int
}

func NewSKUPredicate(sku string, minQty int) (Predicate, error) {
	if sku == "" {
		return Predicate{}, ErrEmptyPredicate
	}
	if minQty < 1 {
		minQty = 1
	}
	return Predicate{sku: sku, minQty: minQty}, nil
}

func NewCategoryPredicate(category string, minQty int) (Predicate, error) {
	if category == "" {
		return Predicate{}, ErrEmptyPredicate
	}
	if minQty < 1 {
		minQty = 1
	}
	return Predicate{category: category, minQty: minQty}, nil
}

func (p Predicate) SKU() string      { return p.sku }
func (p Predicate) Category() string { return p.category }
func (p Predicate) MinQty() int      { return p.minQty }

// Discount is either a percentage of the matched subtotal or a flat amount.
type Discount struct {
	percentOff     *float64
	amountOffCents *int64
}

func NewPercentDiscount(percentOff float64) (Discount, error) {
	if percentOff <= 0 || percentOff > 100 {
		return Discount{}, ErrInvalidPercentOff
	}
	return Discount{percentOff: &percentOff}, nil
}

func NewFlatDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents < 0 {
		return Discount{}, ErrNegativeAmountOff
	}
	return Discount{amountOffCents: &amountOffCents}, nil
}

func (d Discount) IsPercent() bool { return d.percentOff != nil }

func (d Discount) PercentOff() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return 0
}

func (d Discount) AmountOffCents() int64 {
	if d.amountOffCents != nil {
		return *d.amountOffCents
	}
	return 0
}

// OfferRule is immutable once loaded. Rules sharing a non-empty Group are
// mutually exclusive; at most one of them applies to any cart.
type OfferRule struct {
	id        string
	label     string
	predicate Predicate
	discount  Discount
	priority  int
	group     string
}

func NewOfferRule(id, label string, predicate Predicate, discount Discount, priority int, group string) (OfferRule, error) {
	if id == "" {
		return OfferRule{}, ErrEmptyRuleID
	}
	if predicate.sku == "" && predicate.category == "" {
		return OfferRule{}, ErrEmptyPredicate
	}
	if discount.percentOff == nil && discount.amountOffCents == nil {
		return OfferRule{}, ErrEmptyDiscount
	}
	return OfferRule{
		id:        id,
		label:     label,
		predicate: predicate,
		discount:  discount,
		priority:  priority,
		group:     group,
	}, nil
}

func (r OfferRule) ID() string           { return r.id }
func (r OfferRule) Label() string        { return r.label }
func (r OfferRule) Predicate() Predicate { return r.predicate }
func (r OfferRule) Discount() Discount   { return r.discount }
func (r OfferRule) Priority() int        { return r.priority }
func (r OfferRule) Group() string        { return r.group }
