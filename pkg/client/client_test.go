package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/client"
	"github.com/goliatone/go-datacatalog/pkg/testsupport"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	env := testsupport.NewServer(t)
	c, err := client.New(env.URL())
	if err != nil {
		t.Fatalf("construct client: %v", err)
	}
	return c
}

func login(t *testing.T, c *client.Client, username, password string) catalog.AuthStatus {
	t.Helper()
	status, err := c.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("login %q: %v", username, err)
	}
	return status
}

func TestClient_LoginSetsSession(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	before, err := c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if before.Authenticated {
		t.Fatal("fresh client must be anonymous")
	}

	status := login(t, c, "admin", "admin")
	if status.Role != catalog.RoleAdmin {
		t.Fatalf("role = %q, want admin", status.Role)
	}

	after, err := c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if !after.Authenticated || after.Username != "admin" {
		t.Fatalf("session not persisted: %+v", after)
	}

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	final, err := c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if final.Authenticated {
		t.Fatal("logout must clear the session")
	}
}

func TestClient_LoginRejectsBadCredentials(t *testing.T) {
	c := newClient(t)

	_, err := c.Login(context.Background(), "admin", "wrong")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 401 || apiErr.Message != "Invalid credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_ProductsStripSensitiveForStandardRole(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	login(t, c, "user", "user")

	records, err := c.Products(ctx)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	for _, rec := range records {
		if rec.AnnualCost != "" || rec.ContractEnd != "" {
			t.Fatalf("sensitive field leaked for standard role: %+v", rec)
		}
	}
}

func TestClient_ProductLifecycleAsAdmin(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	login(t, c, "admin", "admin")

	created, err := c.CreateProduct(ctx, catalog.Record{
		DataID:    "NEW-001",
		ShortDesc: "Fresh dataset",
		Vendor:    "GammaWire",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must return the assigned ID")
	}

	created.Status = "Live"
	updated, err := c.UpdateProduct(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "Live" {
		t.Fatalf("status = %q", updated.Status)
	}

	fetched, err := c.Product(ctx, created.ID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetched.ShortDesc != "Fresh dataset" {
		t.Fatalf("short_desc = %q", fetched.ShortDesc)
	}

	if err := c.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = c.Product(ctx, created.ID)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestClient_MutationsRequireAdmin(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	login(t, c, "user", "user")

	_, err := c.CreateProduct(ctx, catalog.Record{DataID: "X"})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 403 || apiErr.Message != "Admin access required" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_FiltersAndColumnOptions(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	vocab, err := c.Filters(ctx)
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	regions := vocab["regions"]
	want := map[string]bool{"US-East": true, "EU": true}
	for _, region := range regions {
		delete(want, region)
	}
	if len(want) != 0 {
		t.Fatalf("regions missing tokens: %v (got %v)", want, regions)
	}

	options, err := c.ColumnOptions(ctx)
	if err != nil {
		t.Fatalf("column options: %v", err)
	}
	if !options[catalog.ColumnRegion].IsMultiValue {
		t.Fatal("region must be multi-value")
	}
}

func TestClient_VocabularyManagement(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	login(t, c, "admin", "admin")

	if err := c.AddColumnOption(ctx, catalog.ColumnStatus, "Suspended"); err != nil {
		t.Fatalf("add option: %v", err)
	}
	options, err := c.ColumnOptions(ctx)
	if err != nil {
		t.Fatalf("column options: %v", err)
	}
	if !options[catalog.ColumnStatus].Has("Suspended") {
		t.Fatal("added value missing from vocabulary")
	}

	if err := c.DeleteColumnOption(ctx, catalog.ColumnStatus, "Suspended"); err != nil {
		t.Fatalf("delete option: %v", err)
	}
	options, err = c.ColumnOptions(ctx)
	if err != nil {
		t.Fatalf("column options: %v", err)
	}
	if options[catalog.ColumnStatus].Has("Suspended") {
		t.Fatal("deleted value still present")
	}
}

func TestClient_UserManagement(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	login(t, c, "admin", "admin")

	account, err := c.CreateUser(ctx, "carol", "secret", catalog.RoleStandard)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, err = c.CreateUser(ctx, "carol", "other", catalog.RoleStandard)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Username already exists" {
		t.Fatalf("expected duplicate username error, got %v", err)
	}

	users, err := c.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len(users) = %d, want 3", len(users))
	}

	if err := c.DeleteUser(ctx, account.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
}

func TestClient_CannotDeleteOwnAccount(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()
	login(t, c, "admin", "admin")

	users, err := c.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	var adminID int64 = -1
	for _, u := range users {
		if u.Username == "admin" {
			adminID = u.ID
		}
	}
	if adminID == -1 {
		t.Fatal("admin account not found")
	}

	err = c.DeleteUser(ctx, adminID)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Cannot delete yourself" {
		t.Fatalf("expected self-delete rejection, got %v", err)
	}
}
