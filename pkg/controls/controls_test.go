package controls

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

func regionOptions(multi bool) catalog.ColumnOptions {
	return catalog.ColumnOptions{
		catalog.ColumnRegion: {
			IsMultiValue: multi,
			Values:       []string{"US-East", "EU", "APAC"},
		},
	}
}

func TestMultiChoice_ToggleTwiceTurnsOff(t *testing.T) {
	set := NewSet(regionOptions(true))
	control, ok := set.Control(catalog.ColumnRegion)
	if !ok {
		t.Fatal("expected a region control")
	}
	multi, ok := control.(*MultiChoice)
	if !ok {
		t.Fatalf("expected multi-choice control, got %T", control)
	}

	multi.Toggle("US-East")
	multi.Toggle("EU")
	multi.Toggle("US-East")

	if diff := cmp.Diff([]string{"EU"}, multi.Read()); diff != "" {
		t.Fatalf("toggle state mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_RebuildReplacesControlShape(t *testing.T) {
	set := NewSet(regionOptions(true))
	multi := set.controls[catalog.ColumnRegion].(*MultiChoice)
	multi.Toggle("EU")

	set.Rebuild(regionOptions(false))
	control, ok := set.Control(catalog.ColumnRegion)
	if !ok {
		t.Fatal("expected a region control after rebuild")
	}
	single, ok := control.(*SingleChoice)
	if !ok {
		t.Fatalf("expected single-choice control after flag flip, got %T", control)
	}
	if single.Value() != "" {
		t.Fatalf("rebuilt control must start empty, got %q", single.Value())
	}
}

func TestMultiChoice_ReadFollowsAllowedOrder(t *testing.T) {
	c := NewMultiChoice(catalog.ColumnRegion, []string{"US-East", "EU", "APAC"})
	c.Toggle("APAC")
	c.Toggle("US-East")

	if diff := cmp.Diff([]string{"US-East", "APAC"}, c.Read()); diff != "" {
		t.Fatalf("read order mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiChoice_WriteMarksOnlyAllowedValues(t *testing.T) {
	c := NewMultiChoice(catalog.ColumnRegion, []string{"US-East", "EU"})
	c.Write([]string{"EU", "Atlantis", "US-East"})

	if diff := cmp.Diff([]string{"US-East", "EU"}, c.Read()); diff != "" {
		t.Fatalf("write mismatch (-want +got):\n%s", diff)
	}

	c.Toggle("Atlantis")
	if len(c.Read()) != 2 {
		t.Fatal("toggling an unknown value must be a no-op")
	}
}

func TestSingleChoice_UnknownValueDefaultsToNoSelection(t *testing.T) {
	c := NewSingleChoice(catalog.ColumnStatus, []string{"Live", "Trial"})
	c.Select("Retired")
	if c.Value() != "" {
		t.Fatalf("unknown value must clear the selection, got %q", c.Value())
	}

	c.Select("Live")
	if diff := cmp.Diff([]string{"Live"}, c.Read()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	c.Select("")
	if c.Read() != nil {
		t.Fatal("empty select must clear")
	}
}

func TestSet_LoadRecordAndCollectRoundTrip(t *testing.T) {
	options := catalog.ColumnOptions{
		catalog.ColumnRegion: {IsMultiValue: true, Values: []string{"US-East", "EU", "APAC"}},
		catalog.ColumnStatus: {IsMultiValue: false, Values: []string{"Live", "Trial"}},
	}
	set := NewSet(options)

	rec := catalog.Record{Region: "EU, US-East", Status: "Trial"}
	set.LoadRecord(rec)

	var out catalog.Record
	set.Collect(&out)

	// Multi-choice selections re-pack in allowed display order.
	if out.Region != "US-East, EU" {
		t.Fatalf("unexpected region encoding %q", out.Region)
	}
	if out.Status != "Trial" {
		t.Fatalf("unexpected status %q", out.Status)
	}
}

func TestSet_CollectEmptySelectionEncodesEmptyString(t *testing.T) {
	set := NewSet(regionOptions(true))
	out := catalog.Record{Region: "stale"}
	set.Collect(&out)
	if out.Region != "" {
		t.Fatalf("empty selection must encode to empty string, got %q", out.Region)
	}
}

func TestSet_ClearResetsEveryControl(t *testing.T) {
	options := catalog.ColumnOptions{
		catalog.ColumnRegion: {IsMultiValue: true, Values: []string{"EU"}},
		catalog.ColumnStatus: {IsMultiValue: false, Values: []string{"Live"}},
	}
	set := NewSet(options)
	set.LoadRecord(catalog.Record{Region: "EU", Status: "Live"})
	set.Clear()

	for _, column := range set.Columns() {
		c, _ := set.Control(column)
		if len(c.Read()) != 0 {
			t.Fatalf("control %q not cleared", column)
		}
	}
}

func TestRenderForm_EscapesValuesAndMarksSelection(t *testing.T) {
	options := catalog.ColumnOptions{
		catalog.ColumnStatus: {IsMultiValue: false, Values: []string{`<b>Live</b>`}},
		catalog.ColumnRegion: {IsMultiValue: true, Values: []string{"EU"}},
	}
	set := NewSet(options)
	set.LoadRecord(catalog.Record{Status: `<b>Live</b>`, Region: "EU"})

	markup := set.RenderForm()
	if strings.Contains(markup, "<b>Live</b>") {
		t.Fatal("option values must be escaped")
	}
	if !strings.Contains(markup, "&lt;b&gt;Live&lt;/b&gt;") {
		t.Fatal("expected escaped option value")
	}
	if !strings.Contains(markup, `checked`) {
		t.Fatal("selected tag must render checked")
	}
	if !strings.Contains(markup, `id="dc-status"`) || !strings.Contains(markup, `id="dc-region"`) {
		t.Fatal("expected widget ids for both columns")
	}
}
