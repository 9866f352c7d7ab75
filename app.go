// Package datacatalog ties the catalog building blocks together for front
// ends: a typed API client, the session state with its filter engine, and an
// edit workflow over the schema-driven form controls.
package datacatalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/client"
	"github.com/goliatone/go-datacatalog/pkg/session"
)

// App couples a catalog API client with session state. One App serves one
// user session.
type App struct {
	client *client.Client
	state  *session.State
}

// NewApp constructs an App against a server base URL.
func NewApp(baseURL string, opts ...client.Option) (*App, error) {
	c, err := client.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &App{client: c, state: session.NewState()}, nil
}

// Client exposes the underlying API client.
func (a *App) Client() *client.Client { return a.client }

// State exposes the session state.
func (a *App) State() *session.State { return a.state }

// Bootstrap loads everything the initial screen needs: the session status,
// the facet vocabulary, and the record list, fetched concurrently.
func (a *App) Bootstrap(ctx context.Context) error {
	tag := a.state.BeginLoad()

	var (
		status  catalog.AuthStatus
		vocab   catalog.FilterVocabulary
		records []catalog.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = a.client.CurrentUser(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		vocab, err = a.client.Filters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = a.client.Products(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("datacatalog: bootstrap: %w", err)
	}

	a.state.SetUser(status)
	a.state.SetVocabulary(vocab)
	a.state.ApplyProducts(tag, records)
	return nil
}

// Login authenticates and reloads the record list, since the visible fields
// depend on the role.
func (a *App) Login(ctx context.Context, username, password string) error {
	status, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.state.SetUser(status)
	return a.ReloadProducts(ctx)
}

// Logout ends the session and reloads the record list with the anonymous
// field set.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	a.state.SetUser(catalog.AuthStatus{})
	return a.ReloadProducts(ctx)
}

// ReloadProducts fetches the record list. The load is sequenced: if another
// reload was issued after this one, this result is discarded.
func (a *App) ReloadProducts(ctx context.Context) error {
	tag := a.state.BeginLoad()
	records, err := a.client.Products(ctx)
	if err != nil {
		return err
	}
	a.state.ApplyProducts(tag, records)
	return nil
}

// EditRecord opens an editor for an existing record, fetching the current
// vocabulary metadata and the record itself.
func (a *App) EditRecord(ctx context.Context, id string) (*Editor, error) {
	options, err := a.client.ColumnOptions(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := a.client.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	editor := NewEditor(options)
	editor.Load(rec)
	return editor, nil
}

// NewRecord opens an editor for a record that does not exist yet.
func (a *App) NewRecord(ctx context.Context) (*Editor, error) {
	options, err := a.client.ColumnOptions(ctx)
	if err != nil {
		return nil, err
	}
	return NewEditor(options), nil
}

// Save persists the editor's record: create when it has no ID, update
// otherwise. The record list is reloaded afterwards.
func (a *App) Save(ctx context.Context, editor *Editor) (catalog.Record, error) {
	rec := editor.Record()

	var (
		saved catalog.Record
		err   error
	)
	if rec.ID == "" {
		saved, err = a.client.CreateProduct(ctx, rec)
	} else {
		saved, err = a.client.UpdateProduct(ctx, rec)
	}
	if err != nil {
		return catalog.Record{}, err
	}

	if err := a.ReloadProducts(ctx); err != nil {
		return catalog.Record{}, err
	}
	return saved, nil
}

// Delete removes a record and reloads the list.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return a.ReloadProducts(ctx)
}
