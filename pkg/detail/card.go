package detail

import (
	"context"
	"html"
	"strings"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/render"
)

// Both renderers satisfy the registry contract.
var (
	_ render.Renderer = (*View)(nil)
	_ render.Renderer = (*Card)(nil)
)

// Card renders the compact list/grid item for a record. It never includes
// sensitive fields regardless of role; the detail view owns that gating.
type Card struct{}

// NewCard constructs the card renderer.
func NewCard() *Card { return &Card{} }

// Name implements render.Renderer.
func (c *Card) Name() string { return "card" }

// ContentType implements render.Renderer.
func (c *Card) ContentType() string { return "text/html; charset=utf-8" }

// RenderRecord implements render.Renderer.
func (c *Card) RenderRecord(ctx context.Context, rec catalog.Record, _ catalog.Role) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="product-card" data-id="`)
	b.WriteString(html.EscapeString(rec.ID))
	b.WriteString("\">\n")

	b.WriteString(`    <div class="product-title">`)
	b.WriteString(html.EscapeString(orPlaceholder(rec.Title())))
	b.WriteString("</div>\n")

	b.WriteString(`    <div class="product-vendor">by `)
	if rec.Vendor != "" {
		b.WriteString(html.EscapeString(rec.Vendor))
	} else {
		b.WriteString("Unknown")
	}
	b.WriteString("</div>\n")

	b.WriteString(`    <div class="product-meta">` + "\n")
	writeTag(&b, "category", firstToken(rec.Datatype))
	writeTag(&b, "region", firstToken(rec.Region))
	writeTag(&b, "status", firstToken(rec.Status))
	b.WriteString("    </div>\n")

	b.WriteString(`    <div class="product-desc">`)
	b.WriteString(html.EscapeString(rec.LongDesc))
	b.WriteString("</div>\n")

	b.WriteString(`    <div class="product-footer">` + "\n")
	b.WriteString(`        <span class="tag">`)
	b.WriteString(html.EscapeString(orPlaceholder(rec.DeliveryFrequency)))
	b.WriteString("</span>\n")
	b.WriteString(`        <span class="view-link">View Product →</span>` + "\n")
	b.WriteString("    </div>\n</div>\n")

	return []byte(b.String()), nil
}

func writeTag(b *strings.Builder, class, value string) {
	if value == "" {
		return
	}
	b.WriteString(`        <span class="tag `)
	b.WriteString(html.EscapeString(class))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(value))
	b.WriteString("</span>\n")
}

// DefaultRegistry returns a registry with the built-in record renderers.
func DefaultRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(NewView())
	registry.MustRegister(NewCard())
	return registry
}
