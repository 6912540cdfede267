package bootstrap

import (
	"chatcart/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.InfraModule,
	components.EngineModule,
	components.UseCaseModule,
	components.HandlerModule,
)
