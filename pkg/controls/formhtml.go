package controls

import (
	"html"
	"strings"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// Chrome classes applied to emitted widgets. Kept as constants so the markup
// stays consistent across the form without a theming layer.
const (
	fieldWrapperClass = "grid gap-2"
	labelClass        = "text-sm font-medium text-gray-900"
	selectClass       = "py-2 px-3 block w-full border-gray-200 rounded-lg text-sm"
	tagListClass      = "flex flex-wrap gap-2"
	tagItemClass      = "inline-flex items-center gap-x-1 text-sm"
)

// controlID derives the DOM id for a column's widget.
func controlID(column string) string {
	return "dc-" + column
}

// RenderControl emits the HTML widget for a single control. Every
// interpolated value is escaped; field content is text, never markup.
func RenderControl(c Control) string {
	var b strings.Builder
	writeControl(&b, c)
	return b.String()
}

// RenderForm emits the widgets for every control in the set, each wrapped
// with its column label, in display order.
func (s *Set) RenderForm() string {
	var b strings.Builder
	for _, column := range s.order {
		c := s.controls[column]

		b.WriteString(`<div class="` + fieldWrapperClass + `" data-column="`)
		b.WriteString(html.EscapeString(column))
		b.WriteString(`" data-kind="`)
		b.WriteString(html.EscapeString(string(c.Kind())))
		b.WriteString("\">\n")

		b.WriteString(`    <label for="`)
		b.WriteString(html.EscapeString(controlID(column)))
		b.WriteString(`" class="` + labelClass + `">`)
		b.WriteString(html.EscapeString(catalog.ColumnLabel(column)))
		b.WriteString("</label>\n")

		writeControl(&b, c)
		b.WriteString("</div>\n")
	}
	return b.String()
}

func writeControl(b *strings.Builder, c Control) {
	switch control := c.(type) {
	case *SingleChoice:
		writeSelect(b, control)
	case *MultiChoice:
		writeTagList(b, control)
	}
}

func writeSelect(b *strings.Builder, c *SingleChoice) {
	b.WriteString(`    <select id="`)
	b.WriteString(html.EscapeString(controlID(c.Column())))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(c.Column()))
	b.WriteString(`" class="` + selectClass + "\">\n")

	b.WriteString(`        <option value=""`)
	if c.Value() == "" {
		b.WriteString(` selected`)
	}
	b.WriteString(">—</option>\n")

	for _, value := range c.Allowed() {
		b.WriteString(`        <option value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
		if value == c.Value() {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(value))
		b.WriteString("</option>\n")
	}
	b.WriteString("    </select>\n")
}

func writeTagList(b *strings.Builder, c *MultiChoice) {
	b.WriteString(`    <div id="`)
	b.WriteString(html.EscapeString(controlID(c.Column())))
	b.WriteString(`" class="` + tagListClass + `" role="group">` + "\n")

	for _, value := range c.Allowed() {
		b.WriteString(`        <label class="` + tagItemClass + `"><input type="checkbox" name="`)
		b.WriteString(html.EscapeString(c.Column()))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
		if c.Selected(value) {
			b.WriteString(` checked`)
		}
		b.WriteString(`><span>`)
		b.WriteString(html.EscapeString(value))
		b.WriteString("</span></label>\n")
	}
	b.WriteString("    </div>\n")
}
