// Package controls implements the schema-driven editing widgets for
// categorical columns. Each column owns exactly one control whose shape is
// dictated by the column's vocabulary metadata: a single-choice dropdown or a
// multi-choice tag selector. Both expose a uniform read/write contract so the
// form logic never branches on the widget type.
package controls

import (
	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/delim"
)

// Kind discriminates the control variants.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
)

// Control is the uniform contract both widget shapes satisfy. Read returns
// the current selection as tokens (zero or one for single-choice; allowed
// display order for multi-choice). Write initializes the selection from a
// decoded token sequence.
type Control interface {
	Column() string
	Kind() Kind
	Allowed() []string
	Read() []string
	Write(tokens []string)
	Reset()
}

// SingleChoice holds one selected value or none.
type SingleChoice struct {
	column   string
	allowed  []string
	selected string
}

// NewSingleChoice builds a single-choice control over the allowed values.
func NewSingleChoice(column string, allowed []string) *SingleChoice {
	return &SingleChoice{column: column, allowed: append([]string{}, allowed...)}
}

func (c *SingleChoice) Column() string    { return c.column }
func (c *SingleChoice) Kind() Kind        { return KindSingle }
func (c *SingleChoice) Allowed() []string { return append([]string{}, c.allowed...) }

// Value returns the selected value, or the empty string for no selection.
func (c *SingleChoice) Value() string { return c.selected }

// Read returns the selection as a zero- or one-element sequence.
func (c *SingleChoice) Read() []string {
	if c.selected == "" {
		return nil
	}
	return []string{c.selected}
}

// Select sets the current selection, defaulting to no selection when the
// value is empty or absent from the allowed set.
func (c *SingleChoice) Select(value string) {
	c.selected = ""
	if value == "" {
		return
	}
	for _, allowed := range c.allowed {
		if allowed == value {
			c.selected = value
			return
		}
	}
}

// Write initializes the selection from a decoded token sequence; only the
// first token is considered.
func (c *SingleChoice) Write(tokens []string) {
	if len(tokens) == 0 {
		c.selected = ""
		return
	}
	c.Select(tokens[0])
}

// Reset clears the selection.
func (c *SingleChoice) Reset() { c.selected = "" }

// MultiChoice holds zero or more selected values rendered as independently
// toggleable tokens. Read order is the allowed-values display order, not the
// selection order.
type MultiChoice struct {
	column   string
	allowed  []string
	selected map[string]bool
}

// NewMultiChoice builds a multi-choice control over the allowed values.
func NewMultiChoice(column string, allowed []string) *MultiChoice {
	return &MultiChoice{
		column:   column,
		allowed:  append([]string{}, allowed...),
		selected: make(map[string]bool),
	}
}

func (c *MultiChoice) Column() string    { return c.column }
func (c *MultiChoice) Kind() Kind        { return KindMulti }
func (c *MultiChoice) Allowed() []string { return append([]string{}, c.allowed...) }

// Read returns the selected values in allowed display order.
func (c *MultiChoice) Read() []string {
	var out []string
	for _, value := range c.allowed {
		if c.selected[value] {
			out = append(out, value)
		}
	}
	return out
}

// Toggle flips a value's membership. Values outside the allowed set are
// ignored: they have no toggleable token to flip.
func (c *MultiChoice) Toggle(value string) {
	if !c.isAllowed(value) {
		return
	}
	if c.selected[value] {
		delete(c.selected, value)
		return
	}
	c.selected[value] = true
}

// Selected reports whether a value is currently selected.
func (c *MultiChoice) Selected(value string) bool {
	return c.selected[value]
}

// Write initializes the selection from a decoded token sequence, marking
// every allowed value equal to one of the tokens.
func (c *MultiChoice) Write(tokens []string) {
	c.selected = make(map[string]bool)
	for _, token := range tokens {
		if c.isAllowed(token) {
			c.selected[token] = true
		}
	}
}

// Reset clears every selection.
func (c *MultiChoice) Reset() { c.selected = make(map[string]bool) }

func (c *MultiChoice) isAllowed(value string) bool {
	for _, allowed := range c.allowed {
		if allowed == value {
			return true
		}
	}
	return false
}

// build constructs the control shape dictated by the column metadata.
func build(column string, option catalog.ColumnOption) Control {
	if option.IsMultiValue {
		return NewMultiChoice(column, option.Values)
	}
	return NewSingleChoice(column, option.Values)
}

// encode packs a control's current selection back into the stored-string
// shape the API expects: multi-choice selections join with ", ", single
// choices pass through raw.
func encode(c Control) string {
	tokens := c.Read()
	if c.Kind() == KindMulti {
		return delim.Encode(tokens, delim.CategoricalJoiner)
	}
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
