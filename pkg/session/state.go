// Package session owns the catalog's per-session application state: the
// authenticated user, the view mode, the record collection, the filter
// engine, and the column-option cache. The state is an explicit struct with a
// single writer rather than free-floating globals. It performs no I/O itself.
package session

import (
	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/facet"
)

// ViewMode selects how the filtered record set is presented.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// Stats summarizes the loaded collection for the header counters.
type Stats struct {
	Datasets   int
	Vendors    int
	Categories int
}

// State is the single source of truth for one catalog session. It is not
// safe for concurrent use: all mutations happen on one logical thread, with
// asynchronous fetch results applied through the sequenced Apply* methods.
type State struct {
	user     catalog.AuthStatus
	viewMode ViewMode

	products []catalog.Record
	filtered []catalog.Record
	engine   *facet.Engine

	options    catalog.ColumnOptions
	vocabulary catalog.FilterVocabulary

	// Load sequencing: every record-list load is stamped with an increasing
	// tag, and only the newest issued load may publish its result. Without
	// this, a slow early fetch could overwrite a later one's records.
	issuedLoad  uint64
	appliedLoad uint64
}

// NewState returns an empty session in list view with no constraints.
func NewState() *State {
	return &State{
		viewMode: ViewList,
		engine:   facet.NewEngine(),
	}
}

// SetUser records the authenticated user (or the anonymous status).
func (s *State) SetUser(user catalog.AuthStatus) {
	s.user = user
}

// User returns the current auth status.
func (s *State) User() catalog.AuthStatus {
	return s.user
}

// Role returns the current role, defaulting to guest when unauthenticated.
func (s *State) Role() catalog.Role {
	if !s.user.Authenticated || s.user.Role == "" {
		return catalog.RoleGuest
	}
	return s.user.Role
}

// CanEdit reports whether edit and delete controls should be exposed. The
// server still enforces authorization on its side.
func (s *State) CanEdit() bool {
	return s.user.IsAdmin()
}

// SetViewMode switches between list and grid presentation.
func (s *State) SetViewMode(mode ViewMode) {
	if mode != ViewList && mode != ViewGrid {
		return
	}
	s.viewMode = mode
}

// View returns the current view mode.
func (s *State) View() ViewMode {
	return s.viewMode
}

// BeginLoad stamps a new record-list load and returns its tag. Callers pass
// the tag back to ApplyProducts when the response arrives.
func (s *State) BeginLoad() uint64 {
	s.issuedLoad++
	return s.issuedLoad
}

// ApplyProducts publishes a load's records. Responses older than the newest
// issued load are discarded; it reports whether the payload was applied.
func (s *State) ApplyProducts(tag uint64, records []catalog.Record) bool {
	if tag != s.issuedLoad {
		return false
	}
	s.appliedLoad = tag
	s.products = append([]catalog.Record{}, records...)
	s.Refilter()
	return true
}

// Products returns the full loaded collection.
func (s *State) Products() []catalog.Record {
	return append([]catalog.Record{}, s.products...)
}

// Filtered returns the current filtered result, in original record order.
func (s *State) Filtered() []catalog.Record {
	return append([]catalog.Record{}, s.filtered...)
}

// Engine exposes the filter engine. After mutating it directly, call
// Refilter; the helpers below do so automatically.
func (s *State) Engine() *facet.Engine {
	return s.engine
}

// Refilter recomputes the filtered set from the current selection.
func (s *State) Refilter() {
	s.filtered = s.engine.Apply(s.products)
}

// ToggleFacet flips a facet token and re-evaluates immediately.
func (s *State) ToggleFacet(key, token string) {
	s.engine.Toggle(key, token)
	s.Refilter()
}

// SetSearch replaces the search term and re-evaluates immediately.
func (s *State) SetSearch(term string) {
	s.engine.SetSearch(term)
	s.Refilter()
}

// ClearFilters drops every facet selection and the search term.
func (s *State) ClearFilters() {
	s.engine.Clear()
	s.Refilter()
}

// SetColumnOptions replaces the column-option cache. The cache is fetched
// once per form-open and mutated only through explicit vocabulary actions.
func (s *State) SetColumnOptions(options catalog.ColumnOptions) {
	s.options = options
}

// ColumnOptions returns the cached vocabulary metadata.
func (s *State) ColumnOptions() catalog.ColumnOptions {
	return s.options
}

// SetVocabulary caches the facet checklist values from /api/filters.
func (s *State) SetVocabulary(vocabulary catalog.FilterVocabulary) {
	s.vocabulary = vocabulary
}

// Vocabulary returns the cached facet checklist values.
func (s *State) Vocabulary() catalog.FilterVocabulary {
	return s.vocabulary
}

// Stats derives the header counters from the loaded collection.
func (s *State) Stats() Stats {
	vendors := make(map[string]struct{})
	categories := make(map[string]struct{})
	for _, rec := range s.products {
		if rec.Vendor != "" {
			vendors[rec.Vendor] = struct{}{}
		}
		if rec.Datatype != "" {
			categories[rec.Datatype] = struct{}{}
		}
	}
	return Stats{
		Datasets:   len(s.products),
		Vendors:    len(vendors),
		Categories: len(categories),
	}
}
