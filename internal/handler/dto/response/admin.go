package response

import (
	"chatcart/internal/domain/pricing"
	"chatcart/internal/inventory"
	"chatcart/internal/usecase/queries"
)

type StockLevelResponse struct {
	SKU       string `json:"sku"`
	Name      string `json:"name,omitempty"`
	Price     string `json:"price,omitempty"`
	OnHand    int    `json:"onHand"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
	LowStock  bool   `json:"lowStock"`
}

func FromStockView(view queries.StockView) StockLevelResponse {
	resp := StockLevelResponse{
		SKU:       view.SKU,
		Name:      view.Name,
		OnHand:    view.OnHand,
		Reserved:  view.Reserved,
		Available: view.Available,
		LowStock:  view.LowStock,
	}
	if view.PriceCents > 0 {
		resp.Price = pricing.FormatCents(view.PriceCents)
	}
	return resp
}

func FromLevel(level inventory.Level) StockLevelResponse {
	return StockLevelResponse{
		SKU:       level.SKU,
		OnHand:    level.OnHand,
		Reserved:  level.Reserved,
		Available: level.Available(),
	}
}

type ReloadCatalogResponse struct {
	Products int `json:"products"`
	Rules    int `json:"rules"`
}
