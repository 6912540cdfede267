package queries

import (
	"context"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/inventory"
)

// StockView is one SKU's stock reading joined with its catalog entry.
type StockView struct {
	SKU        string
	Name       string
	OnHand     int
	Reserved   int
	Available  int
	PriceCents int64
	LowStock   bool
}

// StockQueries reports stock levels for the admin surface, flagging SKUs
// under the configured low-stock threshold.
type StockQueries interface {
	Levels(ctx context.Context) ([]StockView, error)
}

type stockQueriesImpl struct {
	ledger   *inventory.Ledger
	catalog  *catalog.Store
	lowStock int
}

func NewStockQueries(ledger *inventory.Ledger, catalogStore *catalog.Store, lowStockThreshold int) StockQueries {
	return &stockQueriesImpl{
		ledger:   ledger,
		catalog:  catalogStore,
		lowStock: lowStockThreshold,
	}
}

func (q *stockQueriesImpl) Levels(_ context.Context) ([]StockView, error) {
	snap := q.catalog.Current()
	levels := q.ledger.Levels()

	out := make([]StockView, 0, len(levels))
	for _, lv := range levels {
		view := StockView{
			SKU:       lv.SKU,
			OnHand:    lv.OnHand,
			Reserved:  lv.Reserved,
			Available: lv.Available(),
			LowStock:  q.lowStock > 0 && lv.OnHand < q.lowStock,
		}
		if product, ok := snap.Product(lv.SKU); ok {
			view.Name = product.Name()
			view.PriceCents = product.PriceCents()
		}
		out = append(out, view)
	}
	return out, nil
}
