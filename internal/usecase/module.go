package usecase

import (
	"go.uber.org/fx"

	"cleo-sign/internal/infrastructure/redis"
)

// provideMappingStore exposes the redis client as the MappingStore interface
func provideMappingStore(client *redis.RedisClient) MappingStore {
	return client
}

var Module = fx.Module("usecase",
	fx.Provide(provideMappingStore),
	fx.Provide(NewProcedureUsecase),
	fx.Provide(NewStatusUsecase),
	fx.Provide(NewDownloadUsecase),
	fx.Provide(NewWebhookUsecase),
)
