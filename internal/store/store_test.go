package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestStore_ProductLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, catalog.Record{
		DataID:      "EQ-001",
		ShortDesc:   "US equities pricing",
		Vendor:      "AlphaData",
		Region:      "US-East, EU",
		ContractEnd: "2025-01-01",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID, "create must assign an opaque ID")

	fetched, err := s.Product(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "US equities pricing", fetched.ShortDesc)
	assert.Equal(t, "2025-01-01", fetched.ContractEnd)

	fetched.Vendor = "BetaFeeds"
	updated, err := s.UpdateProduct(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, "BetaFeeds", updated.Vendor)

	require.NoError(t, s.DeleteProduct(ctx, created.ID))
	_, err = s.Product(ctx, created.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SensitiveFieldsStripped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, catalog.Record{
		DataID:     "EQ-002",
		AnnualCost: "120000",
		Notes:      "renewal pending",
	})
	require.NoError(t, err)

	public, err := s.Product(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Empty(t, public.AnnualCost)
	assert.Empty(t, public.Notes)

	records, err := s.Products(ctx, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].AnnualCost)
}

func TestStore_DeleteUnknownProduct(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteProduct(context.Background(), "missing"), ErrNotFound)
}

func TestStore_DefaultUsersAndAuthentication(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureDefaultUsers(ctx))
	// Idempotent.
	require.NoError(t, s.EnsureDefaultUsers(ctx))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	admin, err := s.Authenticate(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, catalog.RoleAdmin, admin.Role)

	_, err = s.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Authenticate(ctx, "ghost", "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CreateUserRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "secret", catalog.RoleStandard)
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "other", catalog.RoleAdmin)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestStore_FilterVocabularyDecodesTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []catalog.Record{
		{DataID: "A", Region: "US-East, EU", Vendor: "AlphaData", Datatype: "Pricing"},
		{DataID: "B", Region: "EU", Vendor: "BetaFeeds", Datatype: "Pricing"},
	} {
		_, err := s.CreateProduct(ctx, rec)
		require.NoError(t, err)
	}

	vocab, err := s.FilterVocabulary(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"EU", "US-East"}, vocab["regions"], "packed values contribute individual tokens, deduplicated")
	assert.Equal(t, []string{"AlphaData", "BetaFeeds"}, vocab["vendors"])
	assert.Equal(t, []string{"Pricing"}, vocab["categories"])
	for _, key := range catalog.FacetKeys() {
		assert.Contains(t, vocab, key, "every facet key resolves to a column and is present even when empty")
	}
}

func TestStore_ColumnOptionOrderAndDedup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddColumnOption(ctx, catalog.ColumnRegion, "EU"))
	require.NoError(t, s.AddColumnOption(ctx, catalog.ColumnRegion, "US-East"))
	require.NoError(t, s.AddColumnOption(ctx, catalog.ColumnRegion, "EU"), "re-adding is a no-op")
	require.NoError(t, s.SetColumnMultiValue(ctx, catalog.ColumnRegion, true))

	options, err := s.ColumnOptions(ctx)
	require.NoError(t, err)

	region := options[catalog.ColumnRegion]
	assert.True(t, region.IsMultiValue)
	assert.Equal(t, []string{"EU", "US-East"}, region.Values, "insertion order preserved")

	require.NoError(t, s.DeleteColumnOption(ctx, catalog.ColumnRegion, "EU"))
	options, err = s.ColumnOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"US-East"}, options[catalog.ColumnRegion].Values)

	assert.ErrorIs(t, s.DeleteColumnOption(ctx, catalog.ColumnRegion, "EU"), ErrNotFound)
}

func TestStore_AddColumnOptionValidatesColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, s.AddColumnOption(ctx, "annual_cost", "120000"), "sensitive columns carry no vocabulary")
	assert.Error(t, s.AddColumnOption(ctx, catalog.ColumnRegion, "   "))
}

func TestStore_SeedFromFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := `
column_options:
  region:
    is_multi_value: true
    values: [US-East, EU]
  status:
    is_multi_value: false
    values: [Live, Retired]
products:
  - data_ID: EQ-001
    short_desc: US equities pricing
    vendor: AlphaData
    region: "US-East, EU"
  - data_ID: FX-001
    short_desc: FX rates
    vendor: BetaFeeds
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	require.NoError(t, s.SeedFromFile(ctx, path))

	records, err := s.Products(ctx, false)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	options, err := s.ColumnOptions(ctx)
	require.NoError(t, err)
	assert.True(t, options[catalog.ColumnRegion].IsMultiValue)
	assert.Equal(t, []string{"Live", "Retired"}, options[catalog.ColumnStatus].Values)

	// Re-seeding with data present is a no-op.
	require.NoError(t, s.SeedFromFile(ctx, path))
	records, err = s.Products(ctx, false)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
