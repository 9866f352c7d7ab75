// Package testsupport provides fixtures and an in-process catalog server for
// integration-style tests.
package testsupport

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-datacatalog/internal/server"
	"github.com/goliatone/go-datacatalog/internal/store"
	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// SampleRecords returns a small, varied record set: multi-value regions,
// sensitive fields, and one record with no categorical attributes at all.
func SampleRecords() []catalog.Record {
	return []catalog.Record{
		{
			DataID:            "EQ-001",
			ShortDesc:         "US equities pricing",
			LongDesc:          "Daily close prices for US-listed equities.",
			AssetClass:        "Equities",
			Datatype:          "Pricing",
			DeliveryFrequency: "Daily",
			Region:            "US-East, EU",
			Stage:             "Production",
			Status:            "Live",
			Vendor:            "AlphaData",
			LinkedDocs:        "/mnt/shared/contract.pdf\nhttps://example.com/docs/guide.pdf",
			User:              "quant-desk",
			ContractStart:     "2023-01-01",
			ContractEnd:       "2025-01-01",
			AnnualCost:        "120000",
		},
		{
			DataID:    "FX-001",
			ShortDesc: "FX reference rates",
			Datatype:  "Reference",
			Region:    "EU",
			Status:    "Live",
			Vendor:    "BetaFeeds",
		},
		{
			DataID:    "RAW-001",
			ShortDesc: "Unclassified drop",
		},
	}
}

// SampleColumnOptions returns vocabulary metadata exercising both control
// shapes.
func SampleColumnOptions() catalog.ColumnOptions {
	return catalog.ColumnOptions{
		catalog.ColumnRegion: {
			IsMultiValue: true,
			Values:       []string{"US-East", "US-West", "EU", "APAC"},
		},
		catalog.ColumnStatus: {
			IsMultiValue: false,
			Values:       []string{"Live", "Onboarding", "Retired"},
		},
		catalog.ColumnVendor: {
			IsMultiValue: false,
			Values:       []string{"AlphaData", "BetaFeeds"},
		},
	}
}

// Env is a running in-process catalog service.
type Env struct {
	Store  *store.Store
	Server *httptest.Server
}

// NewServer starts a catalog server over a throwaway sqlite database, with
// the default accounts and the sample records loaded. It shuts down with the
// test.
func NewServer(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := st.EnsureDefaultUsers(ctx); err != nil {
		t.Fatalf("default users: %v", err)
	}
	for _, rec := range SampleRecords() {
		if _, err := st.CreateProduct(ctx, rec); err != nil {
			t.Fatalf("seed record %q: %v", rec.DataID, err)
		}
	}
	for column, option := range SampleColumnOptions() {
		if err := st.SetColumnMultiValue(ctx, column, option.IsMultiValue); err != nil {
			t.Fatalf("seed column setting %q: %v", column, err)
		}
		for _, value := range option.Values {
			if err := st.AddColumnOption(ctx, column, value); err != nil {
				t.Fatalf("seed column option %q: %v", column, err)
			}
		}
	}

	srv, err := server.New(st, "test-secret")
	if err != nil {
		t.Fatalf("construct server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &Env{Store: st, Server: ts}
}

// URL returns the base URL of the running server.
func (e *Env) URL() string {
	return e.Server.URL
}
