package components

import (
	"context"
	"log/slog"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/clock"
	"chatcart/internal/pkg/config"
	"chatcart/internal/session"
	"chatcart/internal/usecase/commands"

	"go.uber.org/fx"
)

// EngineModule wires the in-memory core: the inventory ledger, the session
// arena, the catalog store and the background session sweeper.
var EngineModule = fx.Module("engine",
	fx.Provide(
		clock.NewRealClock,
		inventory.NewLedger,
		NewSessionManager,
		NewCatalogStore,
	),
	fx.Invoke(
		RunSweeper,
	),
)

func NewSessionManager(cfg config.Config, clk clock.Clock) *session.Manager {
	return session.NewManager(clk, cfg.Engine.SessionIdleTimeout)
}

// NewCatalogStore performs the initial catalog load and seeds the ledger
// with each product's starting stock. Startup fails if the catalog source
// is unreachable; an engine without products has nothing to sell.
func NewCatalogStore(loader catalog.Loader, ledger *inventory.Ledger, logger *slog.Logger) (*catalog.Store, error) {
	products, rules, err := loader.Load(context.Background())
	if err != nil {
		return nil, err
	}

	store := catalog.NewStore(catalog.NewSnapshot(products, rules))
	for _, p := range products {
		ledger.Register(p.SKU(), p.InitialStock())
	}

	logger.Info("catalog loaded", "products", len(products), "rules", len(rules))
	return store, nil
}

func RunSweeper(lc fx.Lifecycle, cfg config.Config, sessions *session.Manager, ledger *inventory.Ledger, logger *slog.Logger) {
	sweeper := commands.NewSessionSweeper(sessions, ledger, cfg.Engine.SweepInterval, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
