package model

import (
	"todos/shared/constant"
	"todos/shared/model"
)

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID        = "id"
	FieldTitle     = "title"
	FieldCompleted = "completed"
)

type Todo struct {
	ID        int64  `db:"id" readonly:"true"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
	model.Metadata
}

// Field returns the value stored under the given column name.
func (t Todo) Field(name string) (any, bool) {
	switch name {
	case FieldID:
		return t.ID, true
	case FieldTitle:
		return t.Title, true
	case FieldCompleted:
		return t.Completed, true
	case constant.FieldCreatedAt:
		return t.CreatedAt, true
	case constant.FieldModifiedAt:
		return t.ModifiedAt, true
	default:
		return nil, false
	}
}
