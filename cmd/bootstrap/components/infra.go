package components

import (
	"chatcart/internal/domain/catalog"
	"chatcart/internal/infra/archive"
	"chatcart/internal/infra/catalogpg"
	"chatcart/internal/infra/notify"
	"chatcart/internal/usecase/commands"

	"go.uber.org/fx"
)

// InfraModule binds the engine's outward-facing ports: where the catalog
// comes from, where finalized bills go, and how alerts reach the owner.
var InfraModule = fx.Module("infra",
	fx.Provide(
		fx.Annotate(
			catalogpg.NewLoader,
			fx.As(new(catalog.Loader)),
		),
		fx.Annotate(
			archive.NewPostgresArchiver,
			fx.As(new(commands.Archiver)),
		),
		fx.Annotate(
			notify.NewLogNotifier,
			fx.As(new(commands.Notifier)),
		),
	),
)
