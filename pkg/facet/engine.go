// Package facet evaluates catalog records against the active filter
// selection and free-text search term. Filtering is synchronous: every
// selection or search mutation is expected to re-run Apply so the published
// result always reflects the last mutation.
package facet

import (
	"strings"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/delim"
)

// searchColumns are the free-text fields consulted by the search term.
var searchColumns = []string{
	catalog.ColumnShortDesc,
	catalog.ColumnLongDesc,
	catalog.ColumnVendor,
	catalog.ColumnDataID,
}

// Engine holds the active filter selection and search term and evaluates
// record membership against them. It is not safe for concurrent use; the
// session owns it on a single logical thread.
type Engine struct {
	selection Selection
	search    string
}

// NewEngine returns an engine with no constraints.
func NewEngine() *Engine {
	return &Engine{selection: NewSelection()}
}

// SetSearch replaces the free-text search term.
func (e *Engine) SetSearch(term string) {
	e.search = term
}

// Search returns the current free-text search term.
func (e *Engine) Search() string {
	return e.search
}

// Toggle flips a token's membership under a facet key.
func (e *Engine) Toggle(key, token string) {
	e.selection.Toggle(key, token)
}

// Select adds a token to a facet's selection.
func (e *Engine) Select(key, token string) {
	e.selection.Add(key, token)
}

// Deselect removes a token from a facet's selection.
func (e *Engine) Deselect(key, token string) {
	e.selection.Remove(key, token)
}

// Clear drops every selection and the search term.
func (e *Engine) Clear() {
	e.selection = NewSelection()
	e.search = ""
}

// Selection returns a copy of the current selection.
func (e *Engine) Selection() Selection {
	return e.selection.Clone()
}

// Evaluate reports whether a record passes the search term and every facet
// with a non-empty selection (logical AND across facets).
func (e *Engine) Evaluate(rec catalog.Record) bool {
	if !e.searchMatch(rec) {
		return false
	}

	for _, key := range catalog.FacetKeys() {
		selected := e.selection[key]
		if len(selected) == 0 {
			continue
		}
		column, ok := catalog.FacetColumn(key)
		if !ok {
			continue
		}
		// A record with no value for the attribute fails any active facet.
		tokens := delim.Decode(rec.Value(column), delim.Comma)
		if len(tokens) == 0 {
			return false
		}
		if !TokensMatch(tokens, selected) {
			return false
		}
	}
	return true
}

// Apply filters records through Evaluate, preserving the original ordering.
func (e *Engine) Apply(records []catalog.Record) []catalog.Record {
	out := make([]catalog.Record, 0, len(records))
	for _, rec := range records {
		if e.Evaluate(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (e *Engine) searchMatch(rec catalog.Record) bool {
	if e.search == "" {
		return true
	}
	term := strings.ToLower(e.search)
	for _, column := range searchColumns {
		value := rec.Value(column)
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	return false
}

// TokensMatch implements the partial multi-value matching rule: the record's
// token set matches the selection if any record token and any selected token
// are equal, or either contains the other as a substring. The rule is
// deliberately permissive in both directions: a coarse selection like "US"
// matches a finer record value like "US-East" and vice versa, so short
// tokens over-match as a consequence. Downstream behavior depends on these
// exact semantics; do not tighten them.
func TokensMatch(recordTokens, selectedTokens []string) bool {
	for _, have := range recordTokens {
		for _, want := range selectedTokens {
			if have == want {
				return true
			}
			if strings.Contains(have, want) {
				return true
			}
			if strings.Contains(want, have) {
				return true
			}
		}
	}
	return false
}
