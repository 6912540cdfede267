//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedCatalog inserts the baseline products and offer rules every e2e suite
// starts from. Runs before the engine boots so the startup load sees them.
func SeedCatalog(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (sku, name, category, price_cents, initial_stock) VALUES
		    ('SKU-RICE', 'Basmati Rice 1kg', 'grocery', 10000, 5),
		    ('SKU-OIL', 'Sunflower Oil 1L', 'grocery', 20000, 10),
		    ('SKU-SOAP', 'Soap Bar', NULL, 3500, 8)
		ON CONFLICT (sku) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO offer_rules (id, label, sku, category, min_qty, percent_off, amount_off_cents, priority, exclusivity_group) VALUES
		    ('R1', '10% off rice (2+)', 'SKU-RICE', NULL, 2, 10, NULL, 1, NULL),
		    ('R2', 'Rs 5 off grocery', NULL, 'grocery', 1, NULL, 500, 2, 'grocery-promo')
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

// ResetDB clears the archive tables between subtests. Catalog rows stay put:
// the engine only reads them at startup and on explicit reload.
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(), "TRUNCATE billed_order_lines, billed_orders")
	return err
}

func CountBilledOrders(t *testing.T, db DBLike, orderID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM billed_orders WHERE id = $1", orderID).Scan(&count)
	require.NoError(t, err)
	return count
}

func InsertProduct(t *testing.T, db DBLike, sku, name, category string, priceCents int64, initialStock int) {
	t.Helper()

	var cat any
	if category != "" {
		cat = category
	}
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (sku, name, category, price_cents, initial_stock) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (sku) DO NOTHING",
		sku, name, cat, priceCents, initialStock)
	require.NoError(t, err)
}
