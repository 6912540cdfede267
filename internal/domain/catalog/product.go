package catalog

import "errors"

var (
	ErrEmptySKU      = errors.New("product sku cannot be empty")
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrNegativeStock = errors.New("product stock cannot be negative")
)

// Product is the static catalog view of an item: identity, display name and
// price. Live stock counts are owned by the inventory ledger; InitialStock is
// only the seed handed to the ledger when a SKU is first registered.
type Product struct {
	sku          string
	name         string
	category     string
	priceCents   int64
	initialStock int
}

func NewProduct(sku, name, category string, priceCents int64, initialStock int) (Product, error) {
	if sku == "" {
		return Product{}, ErrEmptySKU
	}
	if priceCents < 0 {
		return Product{}, ErrNegativePrice
	}
	if initialStock < 0 {
		return Product{}, ErrNegativeStock
	}
	return Product{
		sku:          sku,
		name:         name,
		category:     category,
		priceCents:   priceCents,
		initialStock: initialStock,
	}, nil
}

func (p Product) SKU() string       { return p.sku }
func (p Product) Name() string      { return p.name }
func (p Product) Category() string  { return p.category }
func (p Product) PriceCents() int64 { return p.priceCents }
func (p Product) InitialStock() int { return p.initialStock }
