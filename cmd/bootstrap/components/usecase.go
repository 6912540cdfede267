package components

import (
	"log/slog"

	"chatcart/internal/domain/catalog"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/clock"
	"chatcart/internal/pkg/config"
	"chatcart/internal/pkg/jwt"
	"chatcart/internal/session"
	"chatcart/internal/usecase"
	"chatcart/internal/usecase/commands"
	"chatcart/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewIntentCommands,
		NewAdminCommands,
		NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		NewStockQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewIntentCommands(
	cfg config.Config,
	sessions *session.Manager,
	ledger *inventory.Ledger,
	catalogStore *catalog.Store,
	archiver commands.Archiver,
	notifier commands.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) commands.IntentCommands {
	return commands.NewIntentCommands(sessions, ledger, catalogStore, archiver, notifier, clk, logger, cfg.Engine.LowStockThreshold)
}

func NewAdminCommands(
	cfg config.Config,
	ledger *inventory.Ledger,
	catalogStore *catalog.Store,
	loader catalog.Loader,
	notifier commands.Notifier,
	logger *slog.Logger,
) commands.AdminCommands {
	return commands.NewAdminCommands(ledger, catalogStore, loader, notifier, logger, cfg.Engine.LowStockThreshold)
}

func NewAuthCommands(cfg config.Config, jwtService *jwt.Service, logger *slog.Logger) commands.AuthCommands {
	return commands.NewAuthCommands(cfg.Engine.AdminPINHash, jwtService, logger)
}

func NewStockQueries(cfg config.Config, ledger *inventory.Ledger, catalogStore *catalog.Store) queries.StockQueries {
	return queries.NewStockQueries(ledger, catalogStore, cfg.Engine.LowStockThreshold)
}
