package commands

import (
	"context"
	"log/slog"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/errs"
)

// AdminCommands is the store owner's side of the engine: replenishment and
// catalog lifecycle. Both were PIN-gated owner actions in the chat flow and
// stay behind admin auth here.
type AdminCommands interface {
	AdjustStock(ctx context.Context, sku string, qty int, reason string) (inventory.Level, error)
	ReloadCatalog(ctx context.Context) (int, int, error)
}

type adminCommandsImpl struct {
	ledger   *inventory.Ledger
	catalog  *catalog.Store
	loader   catalog.Loader
	notifier Notifier
	logger   *slog.Logger
	lowStock int
}

func NewAdminCommands(
	ledger *inventory.Ledger,
	catalogStore *catalog.Store,
	loader catalog.Loader,
	notifier Notifier,
	logger *slog.Logger,
	lowStockThreshold int,
) AdminCommands {
	return &adminCommandsImpl{
		ledger:   ledger,
		catalog:  catalogStore,
		loader:   loader,
		notifier: notifier,
		logger:   logger,
		lowStock: lowStockThreshold,
	}
}

// AdjustStock is add-only replenishment of a known SKU.
func (u *adminCommandsImpl) AdjustStock(ctx context.Context, sku string, qty int, reason string) (inventory.Level, error) {
	if err := u.ledger.Adjust(sku, qty, reason); err != nil {
		return inventory.Level{}, err
	}
	level, err := u.ledger.Level(sku)
	if err != nil {
		return inventory.Level{}, err
	}
	if u.notifier != nil && u.lowStock > 0 && level.OnHand < u.lowStock {
		go u.notifier.LowStock(context.WithoutCancel(ctx), sku, level.OnHand)
	}
	return level, nil
}

// ReloadCatalog loads a fresh snapshot from the configured loader and swaps
// it in atomically. New SKUs are registered with the ledger; existing SKUs
// keep their live counts (stock only moves through the ledger's own
// operations). Returns the loaded product and rule counts.
func (u *adminCommandsImpl) ReloadCatalog(ctx context.Context) (int, int, error) {
	products, rules, err := u.loader.Load(ctx)
	if err != nil {
		return 0, 0, errs.Mark(err, errs.ErrCatalogUnavailable)
	}

	u.catalog.Replace(catalog.NewSnapshot(products, rules))
	for _, p := range products {
		u.ledger.Register(p.SKU(), p.InitialStock())
	}

	u.logger.Info("catalog reloaded", "products", len(products), "rules", len(rules))
	return len(products), len(rules), nil
}
