package dto

import (
	"time"

	"todos/internal/domains/todo/model"
	"todos/shared"
	gDto "todos/shared/dto"
	gModel "todos/shared/model"
	"todos/shared/timezone"
)

const (
	EventCreated = "todo.created"
	EventUpdated = "todo.updated"
	EventDeleted = "todo.deleted"
)

type CreateTodoRequest struct {
	Title     string `json:"title"     validate:"required,notblank,max=255"`
	Completed *bool  `json:"completed"`
}

func (c *CreateTodoRequest) ToModel() model.Todo {
	now := timezone.Now()

	return model.Todo{
		Title:     c.Title,
		Completed: c.Completed != nil && *c.Completed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// UpdateTodoRequest replaces both mutable fields. Completed is a pointer so an
// omitted value is rejected instead of read as false.
type UpdateTodoRequest struct {
	Title     string `db:"title"     json:"title"     validate:"required,notblank,max=255"`
	Completed *bool  `db:"completed" json:"completed" validate:"required"`
}

// ToFields maps the request onto column updates.
func (u *UpdateTodoRequest) ToFields() map[string]any {
	return shared.TransformFields(*u)
}

type TodoResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Completed = model.Completed
}

func FromModels(models []model.Todo) []TodoResponse {
	res := make([]TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ListTodosRequest carries the optional list filters.
type ListTodosRequest struct {
	Title     string
	Completed *bool
}

func (l *ListTodosRequest) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{}

	if l.Title != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Value:    l.Title,
			Operator: gDto.FilterOperatorLike,
		})
	}

	if l.Completed != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCompleted,
			Value:    *l.Completed,
			Operator: gDto.FilterOperatorEq,
		})
	}

	return filter
}

// TodoEvent is published after every successful mutation.
type TodoEvent struct {
	Type       string       `json:"type"`
	Todo       TodoResponse `json:"todo"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func NewTodoEvent(eventType string, todo TodoResponse) TodoEvent {
	return TodoEvent{
		Type:       eventType,
		Todo:       todo,
		OccurredAt: timezone.Now(),
	}
}
