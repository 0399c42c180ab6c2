package http

import (
	"go.uber.org/fx"

	"cleo-sign/internal/delivery/http/handler"
	"cleo-sign/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewProcedureHandler,
		handler.NewHealthHandler,
		handler.NewWebhookHandler,
		handler.NewLogHandler,
		router.NewRouter,
	),
)
