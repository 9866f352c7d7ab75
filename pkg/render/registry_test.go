package render

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (s stubRenderer) RenderRecord(_ context.Context, rec catalog.Record, _ catalog.Role) ([]byte, error) {
	return []byte(rec.Title()), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "card"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("card")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	out, err := renderer.RenderRecord(context.Background(), catalog.Record{ShortDesc: "FX rates"}, catalog.RoleGuest)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "FX rates" {
		t.Fatalf("out = %q", out)
	}
}

func TestRegistry_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "detail"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "detail"}); err == nil {
		t.Fatal("expected duplicate-name error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected empty-name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil-renderer error")
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	if _, err := NewRegistry().Get("mosaic"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestRegistry_HasAndList(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"detail", "card"} {
		if err := registry.Register(stubRenderer{name: name}); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}

	if !registry.Has("card") || registry.Has("mosaic") {
		t.Fatal("Has gave wrong membership")
	}
	if diff := cmp.Diff([]string{"card", "detail"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
