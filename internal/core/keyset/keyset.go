// Package keyset builds strict keyset range predicates and sort clauses.
//
// Pages always resume from a cursor with a strict comparison so rows are
// never repeated even when new rows land between requests. Offset paging is
// deliberately absent.
package keyset

import (
	"fmt"
	"strings"

	"cliptube/internal/core/cursor"
)

// Field is the sortable column
type Field string

const (
	// FieldCreatedAt sorts by recency
	FieldCreatedAt Field = "created_at"
	// FieldViews sorts by popularity with id tie-break
	FieldViews Field = "views"
)

// Dir is the sort direction
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// Query describes one keyset page request
type Query struct {
	Field  Field
	Dir    Dir
	Limit  int
	Cursor *cursor.Cursor
}

// Mode maps the sort field to its cursor wire shape
func (q Query) Mode() cursor.Mode {
	if q.Field == FieldViews {
		return cursor.ModePopularity
	}
	return cursor.ModeRecency
}

// ClampLimit forces n into [1, max] without signaling the caller
func ClampLimit(n, max int) int {
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// Parse builds a Query from raw request inputs.
// Unknown sort fields fall back to created_at, unknown directions to desc.
// A malformed cursor is a validation error, not a first-page fallback.
func Parse(sortBy, sortDir string, limit int, rawCursor string, maxLimit int) (Query, error) {
	q := Query{Field: FieldCreatedAt, Dir: Desc}
	if Field(strings.ToLower(sortBy)) == FieldViews {
		q.Field = FieldViews
	}
	if Dir(strings.ToLower(sortDir)) == Asc {
		q.Dir = Asc
	}
	q.Limit = ClampLimit(limit, maxLimit)

	cur, err := cursor.Decode(q.Mode(), rawCursor)
	if err != nil {
		return Query{}, err
	}
	q.Cursor = cur
	return q, nil
}

// SQL renders the range predicate for q with placeholders starting at argPos.
// Returns an empty fragment and no args on the first page.
func SQL(q Query, argPos int) (string, []any) {
	if q.Cursor == nil {
		return "", nil
	}

	op := "<"
	if q.Dir == Asc {
		op = ">"
	}

	switch q.Field {
	case FieldViews:
		// strict pair comparison, id breaks view-count ties
		frag := fmt.Sprintf("(views %s $%d OR (views = $%d AND id %s $%d))",
			op, argPos, argPos, op, argPos+1)
		return frag, []any{q.Cursor.Views, q.Cursor.ID}
	default:
		frag := fmt.Sprintf("created_at %s $%d", op, argPos)
		return frag, []any{q.Cursor.CreatedAt}
	}
}

// OrderBy renders the sort clause matching the predicate in SQL
func OrderBy(q Query) string {
	dir := "DESC"
	if q.Dir == Asc {
		dir = "ASC"
	}
	if q.Field == FieldViews {
		return fmt.Sprintf("views %s, id %s", dir, dir)
	}
	return fmt.Sprintf("created_at %s", dir)
}

// HasMore reports whether a following page may exist.
// A full page means "probably more"; the next request may come back empty
// when the row count landed exactly on a page boundary. Known approximation.
func HasMore(got, limit int) bool { return got == limit }
