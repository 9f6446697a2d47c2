package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"todos/internal/domains/todo/model"
	"todos/shared/constant"
	gDto "todos/shared/dto"
)

var errRequiredFilter = errors.New("required filter")

type memoryRepository struct {
	mu     sync.RWMutex
	lastID int64
	order  []int64
	todos  map[int64]model.Todo
}

// NewMemory returns a process-local Todo store. Ids come from a counter that
// never goes back, so a deleted id is not handed out again.
func NewMemory() Todo {
	return &memoryRepository{
		todos: map[int64]model.Todo{},
	}
}

func (m *memoryRepository) Insert(_ context.Context, todo model.Todo) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	todo.ID = m.lastID

	m.todos[todo.ID] = todo
	m.order = append(m.order, todo.ID)

	return todo.ID, nil
}

func (m *memoryRepository) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		todo := m.todos[id]
		if filter.Match(todo.Field) {
			return todo, nil
		}
	}

	return model.Todo{}, nil
}

// GetAll returns matches in insertion order, reversed when sorting by id descending.
func (m *memoryRepository) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todos := []model.Todo{}

	for _, id := range m.order {
		todo := m.todos[id]
		if filter.Match(todo.Field) {
			todos = append(todos, todo)
		}
	}

	if params.SortBy == model.FieldID && params.SortDir == gDto.SortDirDesc {
		slices.Reverse(todos)
	}

	return todos, nil
}

func (m *memoryRepository) Update(_ context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error) {
	if len(filter.Filters) == 0 {
		return 0, errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var affected int64

	for _, id := range m.order {
		todo := m.todos[id]
		if !filter.Match(todo.Field) {
			continue
		}

		m.todos[id] = apply(todo, req)
		affected++
	}

	return affected, nil
}

func (m *memoryRepository) Delete(_ context.Context, filter gDto.FilterGroup) (int64, error) {
	if len(filter.Filters) == 0 {
		return 0, errRequiredFilter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]

	var affected int64

	for _, id := range m.order {
		if filter.Match(m.todos[id].Field) {
			delete(m.todos, id)

			affected++

			continue
		}

		kept = append(kept, id)
	}

	m.order = kept

	return affected, nil
}

func apply(todo model.Todo, fields map[string]any) model.Todo {
	for column, value := range fields {
		switch column {
		case model.FieldTitle:
			if v, ok := value.(string); ok {
				todo.Title = v
			}
		case model.FieldCompleted:
			if v, ok := value.(bool); ok {
				todo.Completed = v
			}
		case constant.FieldModifiedAt:
			if v, ok := value.(time.Time); ok {
				todo.ModifiedAt = v
			}
		}
	}

	return todo
}
