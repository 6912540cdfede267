//go:build unit

package pricing_test

import (
	"testing"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/domain/pricing"
	"chatcart/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(t *testing.T, products []catalog.Product, rules []catalog.OfferRule) *catalog.Snapshot {
	t.Helper()
	return catalog.NewSnapshot(products, rules)
}

func TestEvaluate(t *testing.T) {
	productA := builder.NewProductBuilder().WithSKU("SKU-A").WithPrice(10000).MustBuild()
	productB := builder.NewProductBuilder().WithSKU("SKU-B").WithPrice(5000).WithCategory("snacks").MustBuild()

	t.Run("empty cart yields no offers", func(t *testing.T) {
		rule := builder.NewOfferRuleBuilder().MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA}, []catalog.OfferRule{rule})
		assert.Empty(t, pricing.Evaluate(nil, snap))
	})

	t.Run("sku predicate matches only its sku", func(t *testing.T) {
		rule := builder.NewOfferRuleBuilder().WithID("R1").WithSKU("SKU-A").WithPercentOff(10).MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA, productB}, []catalog.OfferRule{rule})

		offers := pricing.Evaluate([]pricing.Line{
			{SKU: "SKU-A", Qty: 2, UnitPriceCents: 10000},
			{SKU: "SKU-B", Qty: 1, UnitPriceCents: 5000},
		}, snap)

		require.Len(t, offers, 1)
		assert.Equal(t, "R1", offers[0].RuleID)
		// percent applies to the matched lines only
		assert.InDelta(t, 2000.0, offers[0].DiscountCents, 0.001)
	})

	t.Run("category predicate matches via the catalog", func(t *testing.T) {
		rule := builder.NewOfferRuleBuilder().WithID("R2").WithCategory("snacks").WithPercentOff(20).MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA, productB}, []catalog.OfferRule{rule})

		offers := pricing.Evaluate([]pricing.Line{
			{SKU: "SKU-A", Qty: 1, UnitPriceCents: 10000},
			{SKU: "SKU-B", Qty: 3, UnitPriceCents: 5000},
		}, snap)

		require.Len(t, offers, 1)
		assert.InDelta(t, 3000.0, offers[0].DiscountCents, 0.001)
	})

	t.Run("min quantity gates eligibility", func(t *testing.T) {
		rule := builder.NewOfferRuleBuilder().WithSKU("SKU-A").WithMinQty(3).MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA}, []catalog.OfferRule{rule})

		offers := pricing.Evaluate([]pricing.Line{{SKU: "SKU-A", Qty: 2, UnitPriceCents: 10000}}, snap)
		assert.Empty(t, offers)

		offers = pricing.Evaluate([]pricing.Line{{SKU: "SKU-A", Qty: 3, UnitPriceCents: 10000}}, snap)
		assert.Len(t, offers, 1)
	})

	t.Run("grouped rules are mutually exclusive, best one wins", func(t *testing.T) {
		small := builder.NewOfferRuleBuilder().WithID("R1").WithSKU("SKU-A").WithPercentOff(5).WithGroup("festival").MustBuild()
		big := builder.NewOfferRuleBuilder().WithID("R2").WithSKU("SKU-A").WithPercentOff(15).WithGroup("festival").MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA}, []catalog.OfferRule{small, big})

		offers := pricing.Evaluate([]pricing.Line{{SKU: "SKU-A", Qty: 1, UnitPriceCents: 10000}}, snap)
		require.Len(t, offers, 1)
		assert.Equal(t, "R2", offers[0].RuleID)
	})

	t.Run("group tie breaks to the lowest rule id", func(t *testing.T) {
		r1 := builder.NewOfferRuleBuilder().WithID("R1").WithSKU("SKU-A").WithPercentOff(10).WithGroup("festival").MustBuild()
		r2 := builder.NewOfferRuleBuilder().WithID("R2").WithSKU("SKU-A").WithPercentOff(10).WithGroup("festival").MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA}, []catalog.OfferRule{r1, r2})

		offers := pricing.Evaluate([]pricing.Line{{SKU: "SKU-A", Qty: 1, UnitPriceCents: 10000}}, snap)
		require.Len(t, offers, 1)
		assert.Equal(t, "R1", offers[0].RuleID)
	})

	t.Run("ungrouped rules stack", func(t *testing.T) {
		r1 := builder.NewOfferRuleBuilder().WithID("R1").WithSKU("SKU-A").WithPercentOff(10).MustBuild()
		r2 := builder.NewOfferRuleBuilder().WithID("R2").WithSKU("SKU-A").WithFlatOff(500).MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA}, []catalog.OfferRule{r1, r2})

		offers := pricing.Evaluate([]pricing.Line{{SKU: "SKU-A", Qty: 1, UnitPriceCents: 10000}}, snap)
		require.Len(t, offers, 2)
	})

	t.Run("pure: repeated evaluation is identical", func(t *testing.T) {
		r1 := builder.NewOfferRuleBuilder().WithID("R1").WithSKU("SKU-A").WithPercentOff(10).WithGroup("g").MustBuild()
		r2 := builder.NewOfferRuleBuilder().WithID("R2").WithCategory("snacks").WithFlatOff(300).MustBuild()
		snap := snapshotWith(t, []catalog.Product{productA, productB}, []catalog.OfferRule{r1, r2})

		lines := []pricing.Line{
			{SKU: "SKU-A", Qty: 2, UnitPriceCents: 10000},
			{SKU: "SKU-B", Qty: 1, UnitPriceCents: 5000},
		}

		first := pricing.Evaluate(lines, snap)
		for i := 0; i < 10; i++ {
			if diff := cmp.Diff(first, pricing.Evaluate(lines, snap)); diff != "" {
				t.Fatalf("Evaluate not deterministic (-want +got):\n%s", diff)
			}
		}
	})
}
