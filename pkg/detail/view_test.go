package detail

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

func sensitiveRecord() catalog.Record {
	return catalog.Record{
		ID:          "p1",
		DataID:      "EQ-001",
		ShortDesc:   "US equities pricing",
		LongDesc:    "Daily close prices.",
		Vendor:      "AlphaData",
		Region:      "US-East, EU",
		Status:      "Live",
		ContractEnd: "2025-01-01",
		AnnualCost:  "120000",
	}
}

func renderDetail(t *testing.T, rec catalog.Record, role catalog.Role) string {
	t.Helper()
	out, err := NewView().RenderRecord(context.Background(), rec, role)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return string(out)
}

func TestView_SensitiveFieldsHiddenFromNonAdmin(t *testing.T) {
	page := renderDetail(t, sensitiveRecord(), catalog.RoleStandard)

	if strings.Contains(page, "2025-01-01") {
		t.Fatal("contract end value leaked to non-admin view")
	}
	if strings.Contains(page, "contract end") {
		t.Fatal("contract end label leaked to non-admin view")
	}
	if strings.Contains(page, "Admin Only") {
		t.Fatal("sensitive badge leaked to non-admin view")
	}
	if strings.Contains(page, `data-action="edit"`) {
		t.Fatal("edit action exposed to non-admin view")
	}
}

func TestView_SensitiveFieldsShownToAdmin(t *testing.T) {
	page := renderDetail(t, sensitiveRecord(), catalog.RoleAdmin)

	if !strings.Contains(page, "2025-01-01") {
		t.Fatal("expected contract end value in admin view")
	}
	if !strings.Contains(page, "contract end") {
		t.Fatal("expected contract end label in admin view")
	}
	if !strings.Contains(page, `<span class="sensitive-badge">Admin Only</span>`) {
		t.Fatal("expected Admin Only badge")
	}
	if !strings.Contains(page, `data-action="edit"`) || !strings.Contains(page, `data-action="delete"`) {
		t.Fatal("expected admin actions")
	}
}

func TestView_ValuesAreNeverMarkup(t *testing.T) {
	rec := catalog.Record{
		ID:        "p2",
		ShortDesc: `<script>alert("x")</script>`,
		LongDesc:  `<img src=x onerror=alert(1)>plain text survives`,
		Vendor:    `<b>bold vendor</b>`,
	}
	page := renderDetail(t, rec, catalog.RoleAdmin)

	for _, forbidden := range []string{"<script>", "<img", "<b>bold"} {
		if strings.Contains(page, forbidden) {
			t.Fatalf("raw markup %q leaked into output", forbidden)
		}
	}
	if !strings.Contains(page, "plain text survives") {
		t.Fatal("sanitized description text must survive")
	}
}

func TestView_MissingValuesRenderPlaceholder(t *testing.T) {
	page := renderDetail(t, catalog.Record{ID: "p3", DataID: "X-1"}, catalog.RoleStandard)

	if !strings.Contains(page, Placeholder) {
		t.Fatal("expected N/A placeholders for absent fields")
	}
	if !strings.Contains(page, "No description available.") {
		t.Fatal("expected description fallback")
	}
	if !strings.Contains(page, "by Unknown") {
		t.Fatal("expected vendor fallback")
	}
}

func TestView_LinkedDocsRenderAsLabelledLinks(t *testing.T) {
	rec := catalog.Record{
		ID:         "p4",
		LinkedDocs: "/mnt/shared/contract.pdf\nhttps://example.com/docs/guide.pdf",
	}
	page := renderDetail(t, rec, catalog.RoleStandard)

	if !strings.Contains(page, `href="/mnt/shared/contract.pdf"`) {
		t.Fatal("expected full value as link target")
	}
	if !strings.Contains(page, ">contract.pdf</a>") || !strings.Contains(page, ">guide.pdf</a>") {
		t.Fatal("expected short labels as link text")
	}
}

func TestCard_NeverContainsSensitiveFields(t *testing.T) {
	out, err := NewCard().RenderRecord(context.Background(), sensitiveRecord(), catalog.RoleAdmin)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	page := string(out)
	if strings.Contains(page, "2025-01-01") || strings.Contains(page, "120000") {
		t.Fatal("card must not expose sensitive values even for admins")
	}
	if !strings.Contains(page, "US equities pricing") {
		t.Fatal("expected title on card")
	}
	// Multi-value attribute previews show the first token only.
	if !strings.Contains(page, ">US-East</span>") || strings.Contains(page, "US-East, EU</span>") {
		t.Fatalf("unexpected region preview: %s", page)
	}
}

func TestDefaultRegistry_HasBothRenderers(t *testing.T) {
	registry := DefaultRegistry()
	for _, name := range []string{"card", "detail"} {
		if !registry.Has(name) {
			t.Fatalf("registry missing %q", name)
		}
	}
}
