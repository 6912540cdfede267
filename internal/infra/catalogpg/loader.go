package catalogpg

import (
	"context"
	"log/slog"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/infra"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Loader reads the catalog tables into immutable domain snapshots. Row
// formats live here; the engine only ever sees catalog.Product and
// catalog.OfferRule values.
type Loader struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLoader(pool *pgxpool.Pool, logger *slog.Logger) *Loader {
	return &Loader{pool: pool, logger: logger}
}

const selectProductsSQL = `
SELECT sku, name, category, price_cents, initial_stock
FROM products
ORDER BY sku`

const selectRulesSQL = `
SELECT id, label, sku, category, min_qty, percent_off, amount_off_cents, priority, exclusivity_group
FROM offer_rules
ORDER BY id`

func (l *Loader) Load(ctx context.Context) ([]catalog.Product, []catalog.OfferRule, error) {
	products, err := l.loadProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	rules, err := l.loadRules(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, rules, nil
}

func (l *Loader) loadProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := l.pool.Query(ctx, selectProductsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(l.logger, infra.KindDBFailure, "query products", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			sku, name    string
			category     *string
			priceCents   int64
			initialStock int
		)
		if err := rows.Scan(&sku, &name, &category, &priceCents, &initialStock); err != nil {
			return nil, infra.WrapRepoErr(l.logger, infra.KindBadRow, "scan product row", err)
		}
		cat := ""
		if category != nil {
			cat = *category
		}
		product, err := catalog.NewProduct(sku, name, cat, priceCents, initialStock)
		if err != nil {
			return nil, infra.WrapRepoErr(l.logger, infra.KindBadRow, "invalid product row "+sku, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(l.logger, infra.KindDBFailure, "iterate product rows", err)
	}
	return products, nil
}

func (l *Loader) loadRules(ctx context.Context) ([]catalog.OfferRule, error) {
	rows, err := l.pool.Query(ctx, selectRulesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(l.logger, infra.KindDBFailure, "query offer rules", err)
	}
	defer rows.Close()

	var rules []catalog.OfferRule
	for rows.Next() {
		var (
			id, label      string
			sku, category  *string
			minQty         int
			percentOff     *float64
			amountOffCents *int64
			priority       int
			group          *string
		)
		if err := rows.Scan(&id, &label, &sku, &category, &minQty, &percentOff, &amountOffCents, &priority, &group); err != nil {
			return nil, infra.WrapRepoErr(l.logger, infra.KindBadRow, "scan offer rule row", err)
		}

		rule, err := buildRule(id, label, sku, category, minQty, percentOff, amountOffCents, priority, group)
		if err != nil {
			return nil, infra.WrapRepoErr(l.logger, infra.KindBadRow, "invalid offer rule row "+id, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(l.logger, infra.KindDBFailure, "iterate offer rule rows", err)
	}
	return rules, nil
}

func buildRule(id, label string, sku, category *string, minQty int, percentOff *float64, amountOffCents *int64, priority int, group *string) (catalog.OfferRule, error) {
	var (
		pred catalog.Predicate
		err  error
	)
	if sku != nil && *sku != "" {
		pred, err = catalog.NewSKUPredicate(*sku, minQty)
	} else {
		cat := ""
		if category != nil {
			cat = *category
		}
		pred, err = catalog.NewCategoryPredicate(cat, minQty)
	}
	if err != nil {
		return catalog.OfferRule{}, err
	}

	var discount catalog.Discount
	if percentOff != nil {
		discount, err = catalog.NewPercentDiscount(*percentOff)
	} else {
		var amount int64
		if amountOffCents != nil {
			amount = *amountOffCents
		}
		discount, err = catalog.NewFlatDiscount(amount)
	}
	if err != nil {
		return catalog.OfferRule{}, err
	}

	groupName := ""
	if group != nil {
		groupName = *group
	}
	return catalog.NewOfferRule(id, label, pred, discount, priority, groupName)
}
