package facet

import "github.com/goliatone/go-datacatalog/pkg/catalog"

// Selection maps facet keys to the set of selected tokens. An empty set for a
// facet means "no constraint on that facet", not "match nothing".
type Selection map[string][]string

// NewSelection returns a selection with every known facet key present and
// unconstrained.
func NewSelection() Selection {
	sel := make(Selection, len(catalog.FacetKeys()))
	for _, key := range catalog.FacetKeys() {
		sel[key] = nil
	}
	return sel
}

// Add selects a token under a facet key. Duplicate selections are ignored.
func (s Selection) Add(key, token string) {
	for _, existing := range s[key] {
		if existing == token {
			return
		}
	}
	s[key] = append(s[key], token)
}

// Remove deselects a token under a facet key.
func (s Selection) Remove(key, token string) {
	values := s[key]
	for i, existing := range values {
		if existing == token {
			s[key] = append(values[:i:i], values[i+1:]...)
			return
		}
	}
}

// Toggle flips a token's membership under a facet key.
func (s Selection) Toggle(key, token string) {
	for _, existing := range s[key] {
		if existing == token {
			s.Remove(key, token)
			return
		}
	}
	s.Add(key, token)
}

// Active reports whether any facet carries a non-empty selection.
func (s Selection) Active() bool {
	for _, values := range s {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Count returns the total number of selected tokens across all facets.
func (s Selection) Count() int {
	total := 0
	for _, values := range s {
		total += len(values)
	}
	return total
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for key, values := range s {
		out[key] = append([]string{}, values...)
	}
	return out
}
