// Package linkeddocs manages the ordered list of document references attached
// to a record while it is being edited. Entries are addressed by identity,
// not value: a user may intentionally list the same path twice, and each copy
// is removable on its own.
package linkeddocs

import (
	"strings"

	"github.com/goliatone/go-datacatalog/pkg/delim"
)

// Entry is one document reference. The raw value is what gets serialized; the
// label is derived for display only.
type Entry struct {
	value string
}

// Value returns the raw path or URL.
func (e *Entry) Value() string { return e.value }

// Label derives the short display label: the final path segment after
// splitting on "/" or "\". When splitting yields nothing usable the label
// falls back to the raw value.
func (e *Entry) Label() string {
	segments := strings.FieldsFunc(e.value, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return e.value
	}
	return segments[len(segments)-1]
}

// List is the edit-session owner of a record's linked documents. The
// serialized snapshot is kept in sync on every mutation so a save can read a
// consistent value at any time.
type List struct {
	entries    []*Entry
	serialized string
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// InitializeFrom decodes the stored string (comma or newline delimited) and
// repopulates the list, replacing any prior entries.
func (l *List) InitializeFrom(raw string) {
	tokens := delim.Decode(raw, delim.CommaOrNewline)
	l.entries = make([]*Entry, 0, len(tokens))
	for _, token := range tokens {
		l.entries = append(l.entries, &Entry{value: token})
	}
	l.sync()
}

// Add appends an entry. No de-duplication is applied.
func (l *List) Add(pathOrURL string) *Entry {
	entry := &Entry{value: pathOrURL}
	l.entries = append(l.entries, entry)
	l.sync()
	return entry
}

// Remove deletes a specific entry by identity. It reports whether the entry
// was present; an equal-valued sibling is left alone.
func (l *List) Remove(entry *Entry) bool {
	for i, candidate := range l.entries {
		if candidate == entry {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			l.sync()
			return true
		}
	}
	return false
}

// Entries returns the current entries in order.
func (l *List) Entries() []*Entry {
	return append([]*Entry{}, l.entries...)
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Serialize returns the newline-joined raw values, ready to store on the
// record's linked_docs attribute.
func (l *List) Serialize() string {
	return l.serialized
}

func (l *List) sync() {
	values := make([]string, 0, len(l.entries))
	for _, entry := range l.entries {
		values = append(values, entry.value)
	}
	l.serialized = delim.Encode(values, delim.DocJoiner)
}
