package controls

import (
	"sort"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/delim"
)

// Set owns one control per categorical column, keyed by column name. A
// metadata change rebuilds the affected entry from scratch: stale controls
// never coexist with new metadata for the same column, since both carry
// selection state keyed by that name.
type Set struct {
	controls map[string]Control
	order    []string
}

// NewSet builds a fresh control per column described by the vocabulary
// metadata. Known catalog columns keep their canonical display order; any
// extra columns follow alphabetically.
func NewSet(options catalog.ColumnOptions) *Set {
	s := &Set{}
	s.Rebuild(options)
	return s
}

// Rebuild discards every control and constructs new ones from the given
// metadata. Prior selection state does not survive a rebuild.
func (s *Set) Rebuild(options catalog.ColumnOptions) {
	s.controls = make(map[string]Control, len(options))
	s.order = s.order[:0]

	for _, column := range catalog.CategoricalColumns() {
		option, ok := options[column]
		if !ok {
			continue
		}
		s.controls[column] = build(column, option)
		s.order = append(s.order, column)
	}

	var extras []string
	for column := range options {
		if _, ok := s.controls[column]; !ok {
			extras = append(extras, column)
		}
	}
	sort.Strings(extras)
	for _, column := range extras {
		s.controls[column] = build(column, options[column])
		s.order = append(s.order, column)
	}
}

// Control returns the control for a column.
func (s *Set) Control(column string) (Control, bool) {
	c, ok := s.controls[column]
	return c, ok
}

// Columns returns the column names in display order.
func (s *Set) Columns() []string {
	return append([]string{}, s.order...)
}

// Clear resets every control to no selection, the blank new-record form.
func (s *Set) Clear() {
	for _, c := range s.controls {
		c.Reset()
	}
}

// LoadRecord initializes every control from the record's stored strings:
// decode the packed value, then hand the tokens to the control's Write.
func (s *Set) LoadRecord(rec catalog.Record) {
	for column, c := range s.controls {
		c.Write(delim.Decode(rec.Value(column), delim.Comma))
	}
}

// Collect writes every control's current selection into the outgoing record,
// re-packing multi-choice selections with the categorical joiner. Free-text
// fields on the record are left untouched.
func (s *Set) Collect(rec *catalog.Record) {
	for column, c := range s.controls {
		rec.SetValue(column, encode(c))
	}
}
