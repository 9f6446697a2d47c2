package dto

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

const (
	FilterOperatorEq    = "eq"
	FilterOperatorLike  = "like"
	FilterOperatorIn    = "in"
	FilterOperatorNotEq = "not_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Lookup resolves a column name to the value held by one record.
type Lookup func(field string) (any, bool)

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq"`
	Table    string
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = fmt.Sprintf("%s.%s", f.Table, f.Field)
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	switch f.Operator {
	case FilterOperatorEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s = :%s", column, argName), args
	case FilterOperatorLike:
		args[argName] = fmt.Sprintf("%%%s%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, argName), args
	case FilterOperatorIn:
		values := asSlice(f.Value)
		if len(values) == 0 {
			return "FALSE", args
		}

		named := make([]string, len(values))

		for idx, value := range values {
			args[fmt.Sprintf("%s_%d", argName, idx)] = value

			named[idx] = fmt.Sprintf(":%s_%d", argName, idx)
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterOperatorNotEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s != :%s", column, argName), args
	default:
		return "", args
	}
}

// Match evaluates the filter against a single record, mirroring the SQL produced by GetWhereClause.
func (f *Filter) Match(lookup Lookup) bool {
	value, ok := lookup(f.Field)
	if !ok {
		return false
	}

	switch f.Operator {
	case FilterOperatorEq:
		return reflect.DeepEqual(value, f.Value)
	case FilterOperatorNotEq:
		return !reflect.DeepEqual(value, f.Value)
	case FilterOperatorLike:
		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(f.Value)))
	case FilterOperatorIn:
		return slices.ContainsFunc(asSlice(f.Value), func(candidate any) bool {
			return reflect.DeepEqual(value, candidate)
		})
	default:
		return false
	}
}

type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) operator() string {
	if f.Operator == FilterGroupOperatorOr {
		return FilterGroupOperatorOr
	}

	return FilterGroupOperatorAnd
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)

		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.operator()+" ")), args
}

// Match reports whether a record satisfies the group. An empty group matches everything.
func (f *FilterGroup) Match(lookup Lookup) bool {
	matched, evaluated := false, 0

	for _, filter := range f.Filters {
		switch fill := filter.(type) {
		case Filter:
			matched = fill.Match(lookup)
		case FilterGroup:
			matched = fill.Match(lookup)
		default:
			continue
		}

		evaluated++

		if f.operator() == FilterGroupOperatorOr && matched {
			return true
		}

		if f.operator() == FilterGroupOperatorAnd && !matched {
			return false
		}
	}

	if evaluated == 0 {
		return true
	}

	return f.operator() == FilterGroupOperatorAnd
}

func asSlice(value any) []any {
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
		return nil
	}

	values := make([]any, val.Len())
	for idx := range val.Len() {
		values[idx] = val.Index(idx).Interface()
	}

	return values
}
