package tmpl

import (
	"strings"
	"testing"
)

func TestEngine_RenderStringWithData(t *testing.T) {
	engine, err := Default()
	if err != nil {
		t.Fatalf("construct engine: %v", err)
	}

	out, err := engine.RenderString("Hello {{ name }}", map[string]any{"name": "catalog"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello catalog" {
		t.Fatalf("out = %q", out)
	}
}

func TestEngine_RenderDetectsInlineContent(t *testing.T) {
	engine, err := Default()
	if err != nil {
		t.Fatalf("construct engine: %v", err)
	}

	out, err := engine.Render("{{ 1 + 1 }}", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "2" {
		t.Fatalf("out = %q", out)
	}
}

func TestEngine_EmbeddedIndexTemplate(t *testing.T) {
	engine, err := Default()
	if err != nil {
		t.Fatalf("construct engine: %v", err)
	}

	out, err := engine.Render("index", map[string]any{
		"title": "Internal Catalog",
		"user":  map[string]any{"authenticated": true, "username": "admin", "role": "admin"},
	})
	if err != nil {
		t.Fatalf("render index: %v", err)
	}
	if !strings.Contains(out, "Internal Catalog") {
		t.Fatal("expected title in page")
	}
	if !strings.Contains(out, `<span class="username">admin</span>`) {
		t.Fatal("expected signed-in session block")
	}
}

func TestEngine_LabelFilter(t *testing.T) {
	engine, err := Default()
	if err != nil {
		t.Fatalf("construct engine: %v", err)
	}

	out, err := engine.RenderString(`{{ "delivery_frequency"|label }}`, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "delivery frequency" {
		t.Fatalf("out = %q", out)
	}
}

func TestEngine_RequiresTemplateSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when no template source is configured")
	}
}
