package request

import (
	"strings"

	"chatcart/internal/domain/order"
)

// IntentRequest is the inbound structured intent record. It is produced by
// the external NLU collaborator; raw chat text never reaches this API.
type IntentRequest struct {
	CustomerID     string `json:"customer_id" binding:"required"`
	Type           string `json:"type" binding:"required"`
	SKU            string `json:"sku,omitempty"`
	Qty            int    `json:"qty,omitempty"`
	IdempotencyKey string `json:"idempotency_key" binding:"required"`
}

func (r IntentRequest) ToDomain() order.Intent {
	return order.Intent{
		Type:           order.IntentType(strings.ToLower(strings.TrimSpace(r.Type))),
		SKU:            strings.TrimSpace(r.SKU),
		Qty:            r.Qty,
		IdempotencyKey: strings.TrimSpace(r.IdempotencyKey),
	}
}
