package components

import (
	"chatcart/internal/handler"
	"chatcart/internal/handler/api"
	"chatcart/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewIntentHandler,
		api.NewAuthHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
