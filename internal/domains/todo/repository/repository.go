package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"todos/config"
	"todos/infras/otel"
	"todos/infras/postgres"
	"todos/internal/domains/todo/model"
	gDto "todos/shared/dto"
	gRepo "todos/shared/repository"

	"github.com/rs/zerolog/log"
)

// Todo is the storage contract shared by every driver. Get returns a zero
// Todo when nothing matches; Update and Delete report the affected row count.
type Todo interface {
	Insert(ctx context.Context, model model.Todo) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Todo, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Todo, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
}

// NewPostgres returns a Todo repository backed by the given connection pair.
func NewPostgres(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// New picks the storage driver from configuration. The returned cleanup
// releases any connection it opened.
func New(cfg *config.Config, otel otel.Otel) (Todo, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverMemory, "":
		log.Info().Msg("Using in-memory todo storage")

		return NewMemory(), func() {}, nil
	case config.DriverPostgres:
		conn := postgres.New(cfg)

		cleanup := func() {
			if err := conn.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database connection")
			}
		}

		return NewPostgres(conn, otel), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}
