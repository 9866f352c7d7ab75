// Package detail renders catalog records for display. All field content is
// treated strictly as text: values pass through html.EscapeString, and the
// one rich-text field (the long description) is stripped down by a strict
// bluemonday policy before it reaches the page.
package detail

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/delim"
	"github.com/goliatone/go-datacatalog/pkg/linkeddocs"
)

// Placeholder shown for absent field values.
const Placeholder = "N/A"

// View renders the full record detail: identity, descriptions, non-sensitive
// categorical attributes, linked documents, and, for admin sessions only, the
// sensitive fields, each tagged with an Admin Only marker.
type View struct {
	policy *bluemonday.Policy
}

// NewView constructs the detail renderer.
func NewView() *View {
	return &View{policy: bluemonday.StrictPolicy()}
}

// Name implements render.Renderer.
func (v *View) Name() string { return "detail" }

// ContentType implements render.Renderer.
func (v *View) ContentType() string { return "text/html; charset=utf-8" }

// RenderRecord implements render.Renderer.
func (v *View) RenderRecord(ctx context.Context, rec catalog.Record, role catalog.Role) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	var b strings.Builder

	b.WriteString(`<div class="detail-header">` + "\n")
	b.WriteString(`    <div class="detail-title">`)
	b.WriteString(html.EscapeString(orPlaceholder(rec.Title())))
	b.WriteString("</div>\n")
	b.WriteString(`    <div class="detail-vendor">by `)
	if rec.Vendor != "" {
		b.WriteString(html.EscapeString(rec.Vendor))
	} else {
		b.WriteString("Unknown")
	}
	b.WriteString("</div>\n</div>\n")

	b.WriteString(`<div class="detail-body">` + "\n")
	b.WriteString(`<div class="detail-main">` + "\n")
	b.WriteString("    <h3>About this dataset</h3>\n")
	b.WriteString(`    <p class="detail-desc">`)
	if desc := strings.TrimSpace(v.policy.Sanitize(rec.LongDesc)); desc != "" {
		b.WriteString(desc)
	} else {
		b.WriteString("No description available.")
	}
	b.WriteString("</p>\n")
	v.writeLinkedDocs(&b, rec.LinkedDocs)
	b.WriteString("</div>\n")

	b.WriteString(`<div class="detail-sidebar">` + "\n")
	writeField(&b, "dataset ID", rec.DataID, false)
	for _, column := range catalog.CategoricalColumns() {
		writeField(&b, catalog.ColumnLabel(column), rec.Value(column), false)
	}
	if role == catalog.RoleAdmin {
		for _, column := range catalog.SensitiveColumns() {
			writeField(&b, catalog.ColumnLabel(column), rec.Value(column), true)
		}
	}
	b.WriteString("</div>\n</div>\n")

	if role == catalog.RoleAdmin {
		b.WriteString(`<div class="detail-actions">` + "\n")
		b.WriteString(`    <button class="btn btn-primary" data-action="edit" data-id="` + html.EscapeString(rec.ID) + `">Edit</button>` + "\n")
		b.WriteString(`    <button class="btn btn-danger" data-action="delete" data-id="` + html.EscapeString(rec.ID) + `">Delete</button>` + "\n")
		b.WriteString("</div>\n")
	}

	return []byte(b.String()), nil
}

func (v *View) writeLinkedDocs(b *strings.Builder, raw string) {
	list := linkeddocs.NewList()
	list.InitializeFrom(raw)
	if list.Len() == 0 {
		return
	}

	b.WriteString(`    <ul class="linked-docs">` + "\n")
	for _, entry := range list.Entries() {
		b.WriteString(`        <li><a href="`)
		b.WriteString(html.EscapeString(entry.Value()))
		b.WriteString(`" target="_blank" rel="noopener">`)
		b.WriteString(html.EscapeString(entry.Label()))
		b.WriteString("</a></li>\n")
	}
	b.WriteString("    </ul>\n")
}

func writeField(b *strings.Builder, label, value string, sensitive bool) {
	b.WriteString(`    <div class="detail-field">` + "\n")
	b.WriteString(`        <div class="detail-field-label">`)
	b.WriteString(html.EscapeString(label))
	if sensitive {
		b.WriteString(`<span class="sensitive-badge">Admin Only</span>`)
	}
	b.WriteString("</div>\n")
	b.WriteString(`        <div class="detail-field-value">`)
	b.WriteString(html.EscapeString(orPlaceholder(value)))
	b.WriteString("</div>\n    </div>\n")
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

// firstToken returns the leading token of a packed multi-value attribute.
// The card renderer shows only this token as its tag preview.
func firstToken(raw string) string {
	tokens := delim.Decode(raw, delim.Comma)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
