package main

import (
	"go.uber.org/fx"

	"cleo-sign/internal/config"
	deliveryhttp "cleo-sign/internal/delivery/http"
	"cleo-sign/internal/infrastructure/database"
	"cleo-sign/internal/infrastructure/httpclient"
	"cleo-sign/internal/infrastructure/logger"
	"cleo-sign/internal/infrastructure/redis"
	"cleo-sign/internal/infrastructure/repository"
	"cleo-sign/internal/server"
	"cleo-sign/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		httpclient.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
