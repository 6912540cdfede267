package order

import "chatcart/internal/pkg/errs"

// IntentType is the closed set of structured customer actions the engine
// accepts. Free text never crosses this boundary; an external NLU
// collaborator produces these records.
type IntentType string

const (
	IntentAddItem         IntentType = "add_item"
	IntentRemoveItem      IntentType = "remove_item"
	IntentChangeQty       IntentType = "change_qty"
	IntentRequestCheckout IntentType = "request_checkout"
	IntentCancel          IntentType = "cancel"
)

func (t IntentType) Valid() bool {
	switch t {
	case IntentAddItem, IntentRemoveItem, IntentChangeQty, IntentRequestCheckout, IntentCancel:
		return true
	}
	return false
}

// IsCartBuilding reports whether the intent may implicitly open a new order.
func (t IntentType) IsCartBuilding() bool {
	return t == IntentAddItem
}

// Intent is one structured customer action. IdempotencyKey identifies the
// logical message; redelivery of the same key replays the prior result.
type Intent struct {
	Type           IntentType
	SKU            string
	Qty            int
	IdempotencyKey string
}

func (i Intent) Validate() error {
	if !i.Type.Valid() {
		return errs.Mark(errs.Newf("unknown intent type %q", i.Type), errs.ErrDomainValidation)
	}
	if i.IdempotencyKey == "" {
		return errs.ErrIdempotencyKeyRequired
	}
	switch i.Type {
	case IntentAddItem, IntentChangeQty:
		if i.SKU == "" {
			return errs.Mark(errs.New("intent requires a sku"), errs.ErrDomainValidation)
		}
		if i.Qty <= 0 {
			return errs.Mark(errs.ErrNonPositiveQty, errs.ErrDomainValidation)
		}
	case IntentRemoveItem:
		if i.SKU == "" {
			return errs.Mark(errs.New("intent requires a sku"), errs.ErrDomainValidation)
		}
	}
	return nil
}
