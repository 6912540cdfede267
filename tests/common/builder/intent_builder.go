//go:build unit || e2e

package builder

import (
	"chatcart/internal/domain/order"
	reqdto "chatcart/internal/handler/dto/request"

	"github.com/google/uuid"
)

type IntentBuilder struct {
	CustomerID     string
	Type           order.IntentType
	SKU            string
	Qty            int
	IdempotencyKey string
}

func NewIntentBuilder() *IntentBuilder {
	return &IntentBuilder{
		CustomerID:     "cust-1",
		Type:           order.IntentAddItem,
		SKU:            "SKU-A",
		Qty:            1,
		IdempotencyKey: uuid.NewString(),
	}
}

func (b *IntentBuilder) With(mutate func(*IntentBuilder)) *IntentBuilder {
	mutate(b)
	return b
}

func (b *IntentBuilder) WithType(t order.IntentType) *IntentBuilder {
	b.Type = t
	return b
}

func (b *IntentBuilder) WithSKU(sku string) *IntentBuilder {
	b.SKU = sku
	return b
}

func (b *IntentBuilder) WithQty(qty int) *IntentBuilder {
	b.Qty = qty
	return b
}

func (b *IntentBuilder) WithKey(key string) *IntentBuilder {
	b.IdempotencyKey = key
	return b
}

func (b *IntentBuilder) BuildDomain() order.Intent {
	return order.Intent{
		Type:           b.Type,
		SKU:            b.SKU,
		Qty:            b.Qty,
		IdempotencyKey: b.IdempotencyKey,
	}
}

func (b *IntentBuilder) BuildDTO() reqdto.IntentRequest {
	return reqdto.IntentRequest{
		CustomerID:     b.CustomerID,
		Type:           string(b.Type),
		SKU:            b.SKU,
		Qty:            b.Qty,
		IdempotencyKey: b.IdempotencyKey,
	}
}
