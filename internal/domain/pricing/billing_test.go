//go:build unit

package pricing_test

import (
	"testing"

	"chatcart/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBill(t *testing.T) {
	t.Run("two units at 100.00 with 10 percent off", func(t *testing.T) {
		lines := []pricing.Line{{SKU: "SKU-B", Qty: 2, UnitPriceCents: 10000}}
		offers := []pricing.Applied{{RuleID: "R1", DiscountCents: 2000}}

		bill := pricing.ComputeBill(lines, offers)

		assert.Equal(t, int64(20000), bill.SubtotalCents)
		assert.Equal(t, int64(2000), bill.DiscountCents)
		assert.Equal(t, int64(18000), bill.GrandTotalCents)
		require.Len(t, bill.Lines, 1)
		assert.Equal(t, int64(20000), bill.Lines[0].TotalCents)
	})

	t.Run("no offers", func(t *testing.T) {
		bill := pricing.ComputeBill([]pricing.Line{{SKU: "A", Qty: 3, UnitPriceCents: 3333}}, nil)
		assert.Equal(t, int64(9999), bill.SubtotalCents)
		assert.Equal(t, int64(0), bill.DiscountCents)
		assert.Equal(t, int64(9999), bill.GrandTotalCents)
	})

	t.Run("fractional discount rounds half up once at the grand total", func(t *testing.T) {
		// 15% of 99.99 is 14.9985: grand 84.9915 rounds to 84.99
		lines := []pricing.Line{{SKU: "A", Qty: 1, UnitPriceCents: 9999}}
		offers := []pricing.Applied{{RuleID: "R1", DiscountCents: 1499.85}}

		bill := pricing.ComputeBill(lines, offers)

		assert.Equal(t, int64(8499), bill.GrandTotalCents)
		// the reported discount is derived so the identity holds exactly
		assert.Equal(t, bill.SubtotalCents-bill.GrandTotalCents, bill.DiscountCents)
		assert.Equal(t, int64(1500), bill.DiscountCents)
	})

	t.Run("half cent boundary rounds up", func(t *testing.T) {
		lines := []pricing.Line{{SKU: "A", Qty: 1, UnitPriceCents: 1000}}
		offers := []pricing.Applied{{RuleID: "R1", DiscountCents: 2.5}}

		bill := pricing.ComputeBill(lines, offers)

		// 997.5 rounds to 998
		assert.Equal(t, int64(998), bill.GrandTotalCents)
	})

	t.Run("discount never inverts the total", func(t *testing.T) {
		lines := []pricing.Line{{SKU: "A", Qty: 1, UnitPriceCents: 500}}
		offers := []pricing.Applied{{RuleID: "R1", DiscountCents: 900}}

		bill := pricing.ComputeBill(lines, offers)

		assert.Equal(t, int64(0), bill.GrandTotalCents)
		assert.Equal(t, int64(500), bill.DiscountCents)
	})

	t.Run("empty cart", func(t *testing.T) {
		bill := pricing.ComputeBill(nil, nil)
		assert.Equal(t, int64(0), bill.SubtotalCents)
		assert.Equal(t, int64(0), bill.GrandTotalCents)
		assert.Empty(t, bill.Lines)
	})
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "200.00", pricing.FormatCents(20000))
	assert.Equal(t, "0.05", pricing.FormatCents(5))
	assert.Equal(t, "0.00", pricing.FormatCents(0))
	assert.Equal(t, "-3.50", pricing.FormatCents(-350))
	assert.Equal(t, "1234.56", pricing.FormatCents(123456))
}
