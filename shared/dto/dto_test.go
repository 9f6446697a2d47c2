package dto_test

import (
	"testing"

	"todos/shared/dto"

	"github.com/stretchr/testify/assert"
)

func record(values map[string]any) dto.Lookup {
	return func(field string) (any, bool) {
		value, ok := values[field]

		return value, ok
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "id", Value: int64(1), Operator: dto.FilterOperatorEq, Table: "todos"},
			wantWhere: "todos.id = :id",
			wantArgs:  map[string]any{"id": int64(1)},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "title", Value: "milk", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(title) LIKE LOWER(:title)",
			wantArgs:  map[string]any{"title": "%milk%"},
		},
		{
			name:      "in",
			filter:    dto.Filter{Field: "id", Value: []int64{1, 2}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1)",
			wantArgs:  map[string]any{"id_0": int64(1), "id_1": int64(2)},
		},
		{
			name:      "empty in",
			filter:    dto.Filter{Field: "id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "not eq with arg name",
			filter:    dto.Filter{ArgName: "c", Field: "completed", Value: true, Operator: dto.FilterOperatorNotEq},
			wantWhere: "completed != :c",
			wantArgs:  map[string]any{"c": true},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Value: 1, Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "title", Value: "milk", Operator: dto.FilterOperatorLike},
			dto.Filter{Field: "completed", Value: true, Operator: dto.FilterOperatorEq},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(LOWER(title) LIKE LOWER(:title) AND completed = :completed)", where)
	assert.Equal(t, map[string]any{"title": "%milk%", "completed": true}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_Match(t *testing.T) {
	milk := record(map[string]any{"id": int64(1), "title": "Buy Milk", "completed": false})

	tests := []struct {
		name  string
		group dto.FilterGroup
		want  bool
	}{
		{
			name:  "empty group matches",
			group: dto.FilterGroup{},
			want:  true,
		},
		{
			name: "like is case insensitive",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "title", Value: "milk", Operator: dto.FilterOperatorLike},
			}},
			want: true,
		},
		{
			name: "and fails on one mismatch",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "title", Value: "milk", Operator: dto.FilterOperatorLike},
				dto.Filter{Field: "completed", Value: true, Operator: dto.FilterOperatorEq},
			}},
			want: false,
		},
		{
			name: "or passes on one match",
			group: dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{
				dto.Filter{Field: "title", Value: "bread", Operator: dto.FilterOperatorLike},
				dto.Filter{Field: "id", Value: int64(1), Operator: dto.FilterOperatorEq},
			}},
			want: true,
		},
		{
			name: "or fails when nothing matches",
			group: dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{
				dto.Filter{Field: "id", Value: int64(2), Operator: dto.FilterOperatorEq},
			}},
			want: false,
		},
		{
			name: "nested group and in",
			group: dto.FilterGroup{Filters: []any{
				dto.FilterGroup{Filters: []any{
					dto.Filter{Field: "id", Value: []int64{1, 3}, Operator: dto.FilterOperatorIn},
				}},
				dto.Filter{Field: "completed", Value: true, Operator: dto.FilterOperatorNotEq},
			}},
			want: true,
		},
		{
			name: "unknown field never matches",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "owner", Value: "me", Operator: dto.FilterOperatorEq},
			}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.group.Match(milk))
		})
	}
}

func TestQueryParams_OrderClause(t *testing.T) {
	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{name: "default direction", params: dto.QueryParams{SortBy: "id"}, want: "ORDER BY id ASC"},
		{name: "descending", params: dto.QueryParams{SortBy: "title", SortDir: dto.SortDirDesc}, want: "ORDER BY title DESC"},
		{name: "column not allowed", params: dto.QueryParams{SortBy: "id; DROP TABLE todos"}, want: ""},
		{name: "no sort", params: dto.QueryParams{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.OrderClause("id", "title"))
		})
	}
}
