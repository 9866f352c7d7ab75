package datacatalog

import (
	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/controls"
	"github.com/goliatone/go-datacatalog/pkg/linkeddocs"
)

// Editor holds one record's edit session: schema-driven controls for the
// categorical columns, a linked-docs working list, and plain fields for
// everything else. Opening a record initializes all three from its stored
// strings; Record packs them back.
type Editor struct {
	id       string
	controls *controls.Set
	docs     *linkeddocs.List
	fields   map[string]string
}

// NewEditor builds a blank editor from vocabulary metadata.
func NewEditor(options catalog.ColumnOptions) *Editor {
	return &Editor{
		controls: controls.NewSet(options),
		docs:     linkeddocs.NewList(),
		fields:   make(map[string]string),
	}
}

// Load initializes the editor from an existing record, replacing any state.
func (e *Editor) Load(rec catalog.Record) {
	e.id = rec.ID
	e.controls.LoadRecord(rec)
	e.docs.InitializeFrom(rec.LinkedDocs)

	e.fields = make(map[string]string)
	for _, column := range freeTextColumns() {
		e.fields[column] = rec.Value(column)
	}
}

// Reset clears every control, the doc list, and the free-text fields. The
// editor becomes a blank new-record form.
func (e *Editor) Reset() {
	e.id = ""
	e.controls.Clear()
	e.docs.InitializeFrom("")
	e.fields = make(map[string]string)
}

// Rebuild replaces the form controls after a vocabulary metadata change.
// Selection state does not survive; callers re-Load the record if needed.
func (e *Editor) Rebuild(options catalog.ColumnOptions) {
	e.controls.Rebuild(options)
}

// ID returns the record ID, empty for a new record.
func (e *Editor) ID() string { return e.id }

// Controls exposes the categorical form controls.
func (e *Editor) Controls() *controls.Set { return e.controls }

// Docs exposes the linked-docs working list.
func (e *Editor) Docs() *linkeddocs.List { return e.docs }

// SetField stores a free-text field value. Categorical columns are owned by
// the controls and are ignored here.
func (e *Editor) SetField(column, value string) {
	if catalog.IsCategorical(column) {
		return
	}
	e.fields[column] = value
}

// Field returns a free-text field value.
func (e *Editor) Field(column string) string {
	return e.fields[column]
}

// Record packs the edit session into a wire record: control selections are
// re-encoded, the doc list is serialized, and free-text fields are copied
// through.
func (e *Editor) Record() catalog.Record {
	rec := catalog.Record{ID: e.id}
	for column, value := range e.fields {
		rec.SetValue(column, value)
	}
	e.controls.Collect(&rec)
	rec.LinkedDocs = e.docs.Serialize()
	return rec
}

// freeTextColumns lists every column the editor treats as plain text:
// identity, descriptions, and the sensitive contract fields.
func freeTextColumns() []string {
	columns := []string{
		catalog.ColumnDataID,
		catalog.ColumnShortDesc,
		catalog.ColumnLongDesc,
	}
	return append(columns, catalog.SensitiveColumns()...)
}
