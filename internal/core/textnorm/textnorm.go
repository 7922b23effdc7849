// Package textnorm normalizes free-text search input before it reaches SQL
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Query canonicalizes a search query: NFKC form, case folded,
// whitespace runs collapsed to single spaces
func Query(s string) string {
	s = norm.NFKC.String(s)
	s = folder.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// LikePattern wraps a normalized query for ILIKE substring matching,
// escaping the wildcard metacharacters in user input
func LikePattern(s string) string {
	s = Query(s)
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
