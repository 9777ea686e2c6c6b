package components

import (
	"roombook/internal/handler"
	"roombook/internal/handler/api"
	"roombook/internal/handler/middleware"
	"roombook/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewHistoryHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
