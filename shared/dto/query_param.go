package dto

import (
	"fmt"
	"slices"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// OrderClause renders an ORDER BY clause when SortBy is one of the allowed columns.
func (q *QueryParams) OrderClause(allowed ...string) string {
	if q.SortBy == "" || !slices.Contains(allowed, q.SortBy) {
		return ""
	}

	dir := SortDirAsc
	if q.SortDir == SortDirDesc {
		dir = SortDirDesc
	}

	return fmt.Sprintf("ORDER BY %s %s", q.SortBy, dir)
}
