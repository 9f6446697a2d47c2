package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"todos/config"
	"todos/infras/kafka"
	"todos/infras/otel"
	"todos/internal/domains/todo/model"
	"todos/internal/domains/todo/model/dto"
	"todos/internal/domains/todo/repository"
	"todos/shared"
	"todos/shared/cache"
	"todos/shared/constant"
	gDto "todos/shared/dto"
	"todos/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyPrefix = "todos"
	errNotFound    = "todo not found"
)

var (
	listCachePrefix = shared.BuildCacheKey(cacheKeyPrefix, "list")
	listOrder       = gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	GetAll(ctx context.Context, req dto.ListTodosRequest) ([]dto.TodoResponse, error)
	Get(ctx context.Context, id int64) (dto.TodoResponse, error)
	Update(ctx context.Context, req dto.UpdateTodoRequest, id int64) (dto.TodoResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Todo
	cfg   *config.Config
	cache cache.RedisCache
	kafka kafka.Client
	otel  otel.Otel
	guard cacheGuard
}

func New(repo repository.Todo, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		kafka: kafka,
		otel:  otel,
	}
}

func itemCacheKey(id int64) string {
	return shared.BuildCacheKey(cacheKeyPrefix, "item", id)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	todo := req.ToModel()

	todo.ID, err = s.repo.Insert(ctx, todo)
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(todo)
	s.publish(ctx, dto.EventCreated, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req dto.ListTodosRequest) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := req.ToFilter()
	key := shared.BuildCacheKeyWithFilter(listCachePrefix, filter)

	if s.fromCache(ctx, key, &res) {
		return res, nil
	}

	epoch := s.guard.snapshot()

	models, err := s.repo.GetAll(ctx, listOrder, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	res = dto.FromModels(models)
	s.toCache(ctx, key, res, epoch)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	key := itemCacheKey(id)
	if s.fromCache(ctx, key, &res) {
		return res, nil
	}

	epoch := s.guard.snapshot()

	todo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get todo")

		return res, fmt.Errorf("failed to get todo: %w", err)
	}

	if todo.ID == 0 {
		return res, failure.NotFound(errNotFound) //nolint:wrapcheck
	}

	res.FromModel(todo)
	s.toCache(ctx, key, res, epoch)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTodoRequest, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	affected, err := s.repo.Update(ctx, req.ToFields(), filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound(errNotFound) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	todo, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to reload todo")

		return res, fmt.Errorf("failed to reload todo: %w", err)
	}

	// deleted between the update and the reload
	if todo.ID == 0 {
		return res, failure.NotFound(errNotFound) //nolint:wrapcheck
	}

	res.FromModel(todo)
	s.publish(ctx, dto.EventUpdated, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	todo, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get todo")

		return fmt.Errorf("failed to get todo: %w", err)
	}

	if todo.ID == 0 {
		return failure.NotFound(errNotFound) //nolint:wrapcheck
	}

	affected, err := s.repo.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(errNotFound) //nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	var deleted dto.TodoResponse
	deleted.FromModel(todo)
	s.publish(ctx, dto.EventDeleted, deleted)

	return nil
}

// fromCache reports a hit. Misses and cache failures both fall through to storage.
func (s *serviceImpl) fromCache(ctx context.Context, key string, value any) bool {
	err := s.cache.Get(ctx, key, value)
	if err == nil {
		return true
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cache")
	}

	return false
}

// toCache stores value unless a write happened since epoch was taken.
func (s *serviceImpl) toCache(ctx context.Context, key string, value any, epoch uint64) {
	stored := s.guard.store(epoch, func() {
		if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to save cache")
		}
	})
	if !stored {
		log.Debug().Str("key", key).Msg("skipped cache fill that overlapped a write")
	}
}

// invalidate drops every listing and the given items before the write returns.
func (s *serviceImpl) invalidate(ctx context.Context, ids ...int64) {
	s.guard.bump()

	for _, id := range ids {
		if err := s.cache.Delete(ctx, itemCacheKey(id)); err != nil {
			log.Warn().Err(err).Int64("id", id).Msg("failed to invalidate todo cache")
		}
	}

	if err := s.cache.Clear(ctx, listCachePrefix); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate todo list cache")
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, todo dto.TodoResponse) {
	event := dto.NewTodoEvent(eventType, todo)
	ctx = context.WithoutCancel(ctx)

	go func() {
		ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".publish")
		defer scope.End()

		err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{
			Key:   strconv.FormatInt(todo.ID, 10),
			Value: event,
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("event", eventType).Int64("id", todo.ID).Msg("failed to publish todo event")
		}
	}()
}
