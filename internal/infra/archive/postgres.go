package archive

import (
	"context"
	"log/slog"

	"chatcart/internal/domain/order"
	"chatcart/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresArchiver persists final bills to the billed_orders tables. It sits
// behind the checkout path as a fire-and-forget write; the engine's own
// state never depends on it.
type PostgresArchiver struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresArchiver(pool *pgxpool.Pool, logger *slog.Logger) *PostgresArchiver {
	return &PostgresArchiver{pool: pool, logger: logger}
}

const insertOrderSQL = `
INSERT INTO billed_orders (id, customer_id, subtotal_cents, discount_cents, grand_total_cents, created_at, billed_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (id) DO NOTHING`

const insertLineSQL = `
INSERT INTO billed_order_lines (order_id, sku, qty, unit_price_cents, total_cents)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (order_id, sku) DO NOTHING`

func (a *PostgresArchiver) SaveBill(ctx context.Context, snap order.Snapshot) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr(a.logger, infra.KindDBFailure, "begin archive tx", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr != pgx.ErrTxClosed {
			a.logger.Warn("failed to rollback archive transaction", "error", rollbackErr)
		}
	}()

	tag, err := tx.Exec(ctx, insertOrderSQL,
		snap.OrderID, snap.SessionID, snap.SubtotalCents, snap.DiscountCents, snap.GrandTotalCents, snap.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr(a.logger, infra.KindDBFailure, "insert billed order", err)
	}
	if tag.RowsAffected() == 0 {
		// Retried handoff for an order that is already archived.
		return nil
	}

	for _, line := range snap.Lines {
		_, err := tx.Exec(ctx, insertLineSQL,
			snap.OrderID, line.SKU, line.Reserved, line.UnitPriceCents, line.TotalCents)
		if err != nil {
			return infra.WrapRepoErr(a.logger, infra.KindDBFailure, "insert billed order line", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr(a.logger, infra.KindDBFailure, "commit archive tx", err)
	}
	return nil
}
