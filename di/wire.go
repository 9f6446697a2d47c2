//go:build wireinject
// +build wireinject

package di

import (
	"todos/config"
	"todos/infras/s3"
	"todos/internal/backup"
	healthHandler "todos/internal/handlers/health"
	todoHandler "todos/internal/handlers/todo"
	webHandler "todos/internal/handlers/web"
	"todos/shared/cache"
	"todos/transport/http"
	"todos/transport/http/middleware"
	"todos/transport/http/router"

	todoRepository "todos/internal/domains/todo/repository"
	todoService "todos/internal/domains/todo/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	provideOtel,
	provideKafka,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	healthHandler.New,
	webHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}

func InitializeBackup() (*backup.Backup, func(), error) {
	wire.Build(
		configurations,
		provideOtel,
		todoRepository.New,
		s3.New,
		backup.New,
	)

	return &backup.Backup{}, nil, nil
}
