package request

type AdjustStockRequest struct {
	SKU    string `json:"sku" binding:"required"`
	Qty    int    `json:"qty" binding:"required,gt=0"`
	Reason string `json:"reason,omitempty"`
}
