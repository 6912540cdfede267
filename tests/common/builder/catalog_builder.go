//go:build unit || e2e

package builder

import (
	"chatcart/internal/domain/catalog"
)

type ProductBuilder struct {
	SKU          string
	Name         string
	Category     string
	PriceCents   int64
	InitialStock int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		SKU:          "SKU-A",
		Name:         "Basmati Rice 1kg",
		Category:     "grocery",
		PriceCents:   10000,
		InitialStock: 5,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) WithSKU(sku string) *ProductBuilder {
	b.SKU = sku
	return b
}

func (b *ProductBuilder) WithPrice(cents int64) *ProductBuilder {
	b.PriceCents = cents
	return b
}

func (b *ProductBuilder) WithStock(n int) *ProductBuilder {
	b.InitialStock = n
	return b
}

func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.Category = category
	return b
}

func (b *ProductBuilder) BuildDomain() (catalog.Product, error) {
	return catalog.NewProduct(b.SKU, b.Name, b.Category, b.PriceCents, b.InitialStock)
}

func (b *ProductBuilder) MustBuild() catalog.Product {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

type OfferRuleBuilder struct {
	ID         string
	Label      string
	SKU        string
	Category   string
	MinQty     int
	PercentOff float64
	FlatOff    int64
	Priority   int
	Group      string
}

func NewOfferRuleBuilder() *OfferRuleBuilder {
	return &OfferRuleBuilder{
		ID:         "R1",
		Label:      "10% off",
		SKU:        "SKU-A",
		MinQty:     1,
		PercentOff: 10,
	}
}

func (b *OfferRuleBuilder) With(mutate func(*OfferRuleBuilder)) *OfferRuleBuilder {
	mutate(b)
	return b
}

func (b *OfferRuleBuilder) WithID(id string) *OfferRuleBuilder {
	b.ID = id
	return b
}

func (b *OfferRuleBuilder) WithSKU(sku string) *OfferRuleBuilder {
	b.SKU = sku
	b.Category = ""
	return b
}

func (b *OfferRuleBuilder) WithCategory(category string) *OfferRuleBuilder {
	b.Category = category
	b.SKU = ""
	return b
}

func (b *OfferRuleBuilder) WithMinQty(n int) *OfferRuleBuilder {
	b.MinQty = n
	return b
}

func (b *OfferRuleBuilder) WithPercentOff(p float64) *OfferRuleBuilder {
	b.PercentOff = p
	b.FlatOff = 0
	return b
}

func (b *OfferRuleBuilder) WithFlatOff(cents int64) *OfferRuleBuilder {
	b.FlatOff = cents
	b.PercentOff = 0
	return b
}

func (b *OfferRuleBuilder) WithGroup(group string) *OfferRuleBuilder {
	b.Group = group
	return b
}

func (b *OfferRuleBuilder) WithPriority(p int) *OfferRuleBuilder {
	b.Priority = p
	return b
}

func (b *OfferRuleBuilder) BuildDomain() (catalog.OfferRule, error) {
	var (
		pred catalog.Predicate
		err  error
	)
	if b.Category != "" {
		pred, err = catalog.NewCategoryPredicate(b.Category, b.MinQty)
	} else {
		pred, err = catalog.NewSKUPredicate(b.SKU, b.MinQty)
	}
	if err != nil {
		return catalog.OfferRule{}, err
	}

	var disc catalog.Discount
	if b.FlatOff > 0 {
		disc, err = catalog.NewFlatDiscount(b.FlatOff)
	} else {
		disc, err = catalog.NewPercentDiscount(b.PercentOff)
	}
	if err != nil {
		return catalog.OfferRule{}, err
	}

	return catalog.NewOfferRule(b.ID, b.Label, pred, disc, b.Priority, b.Group)
}

func (b *OfferRuleBuilder) MustBuild() catalog.OfferRule {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}
