package repository

import (
	"go.uber.org/fx"

	"cleo-sign/internal/infrastructure/httpclient"
)

var Module = fx.Module("repository",
	fx.Provide(NewSignatureRepository),
	fx.Provide(NewContractFileRepository),
	fx.Provide(
		fx.Annotate(
			NewAPILogRepository,
			fx.As(new(httpclient.APILogSaver)),
			fx.As(new(APILogRepository)),
		),
	),
)
