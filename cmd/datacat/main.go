// datacat is an interactive terminal client for the catalog service. It
// mirrors the browser app: faceted browsing for everyone, record editing and
// vocabulary management for admins.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	datacatalog "github.com/goliatone/go-datacatalog"
	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/controls"
	"github.com/goliatone/go-datacatalog/pkg/facet"
	"github.com/goliatone/go-datacatalog/pkg/linkeddocs"
)

func main() {
	log.SetFlags(0)

	baseURL := os.Getenv("CATALOG_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := datacatalog.NewApp(baseURL)
	if err != nil {
		log.Fatalf("datacat: %v", err)
	}
	if err := app.Bootstrap(ctx); err != nil {
		log.Fatalf("datacat: connect to %s: %v", baseURL, err)
	}

	cli := &cli{app: app, prompt: surveyPrompter{}}
	if err := cli.run(ctx); err != nil && !errors.Is(err, ErrAborted) {
		log.Fatalf("datacat: %v", err)
	}
}

type cli struct {
	app    *datacatalog.App
	prompt prompter
}

func (c *cli) run(ctx context.Context) error {
	for {
		state := c.app.State()
		stats := state.Stats()
		_ = c.prompt.Info(ctx, "\n%d datasets · %d vendors · %d categories · %d shown",
			stats.Datasets, stats.Vendors, stats.Categories, len(state.Filtered()))

		options := []string{"Browse records", "Search", "Filters", "Clear filters"}
		if state.User().Authenticated {
			if state.CanEdit() {
				options = append(options, "New record", "Vocabulary")
			}
			options = append(options, "Sign out")
		} else {
			options = append(options, "Sign in")
		}
		options = append(options, "Quit")

		choice, err := c.prompt.Select(ctx, "Data catalog", options)
		if err != nil {
			return err
		}

		switch options[choice] {
		case "Browse records":
			err = c.browse(ctx)
		case "Search":
			err = c.search(ctx)
		case "Filters":
			err = c.filters(ctx)
		case "Clear filters":
			state.ClearFilters()
		case "New record":
			err = c.newRecord(ctx)
		case "Vocabulary":
			err = c.vocabulary(ctx)
		case "Sign in":
			err = c.login(ctx)
		case "Sign out":
			err = c.app.Logout(ctx)
		case "Quit":
			return nil
		}
		if errors.Is(err, ErrAborted) {
			continue
		}
		if err != nil {
			_ = c.prompt.Info(ctx, "error: %v", err)
		}
	}
}

func (c *cli) login(ctx context.Context) error {
	username, err := c.prompt.Input(ctx, "Username", "")
	if err != nil {
		return err
	}
	password, err := c.prompt.Password(ctx, "Password")
	if err != nil {
		return err
	}
	if err := c.app.Login(ctx, username, password); err != nil {
		return err
	}
	return c.prompt.Info(ctx, "signed in as %s", username)
}

func (c *cli) search(ctx context.Context) error {
	term, err := c.prompt.Input(ctx, "Search", c.app.State().Engine().Search())
	if err != nil {
		return err
	}
	c.app.State().SetSearch(term)
	return nil
}

// filters drives the facet checklists: pick a facet, then toggle its values.
func (c *cli) filters(ctx context.Context) error {
	state := c.app.State()
	keys := catalog.FacetKeys()

	labels := make([]string, len(keys))
	selection := state.Engine().Selection()
	for i, key := range keys {
		labels[i] = fmt.Sprintf("%s (%d active)", catalog.ColumnLabel(key), len(selection[key]))
	}

	choice, err := c.prompt.Select(ctx, "Facet", labels)
	if err != nil {
		return err
	}
	key := keys[choice]

	values := state.Vocabulary()[key]
	if len(values) == 0 {
		return c.prompt.Info(ctx, "no values for %s", catalog.ColumnLabel(key))
	}

	picked, err := c.prompt.MultiSelect(ctx, catalog.ColumnLabel(key), values, selection[key])
	if err != nil {
		return err
	}

	c.applyFacet(state.Engine(), key, picked)
	state.Refilter()
	return nil
}

// applyFacet reconciles the engine's selection with the checklist result.
func (c *cli) applyFacet(engine *facet.Engine, key string, picked []string) {
	want := make(map[string]struct{}, len(picked))
	for _, value := range picked {
		want[value] = struct{}{}
	}
	for _, value := range engine.Selection()[key] {
		if _, ok := want[value]; !ok {
			engine.Deselect(key, value)
		}
	}
	for _, value := range picked {
		engine.Select(key, value)
	}
}

func (c *cli) browse(ctx context.Context) error {
	state := c.app.State()
	records := state.Filtered()
	if len(records) == 0 {
		return c.prompt.Info(ctx, "no records match the current filters")
	}

	labels := make([]string, len(records))
	for i, rec := range records {
		vendor := rec.Vendor
		if vendor == "" {
			vendor = "Unknown"
		}
		labels[i] = fmt.Sprintf("%s — %s", rec.Title(), vendor)
	}

	choice, err := c.prompt.Select(ctx, "Records", labels)
	if err != nil {
		return err
	}
	return c.detail(ctx, records[choice])
}

func (c *cli) detail(ctx context.Context, rec catalog.Record) error {
	state := c.app.State()

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rec.Title())
	if rec.Vendor != "" {
		fmt.Fprintf(&b, "by %s\n", rec.Vendor)
	}
	if rec.LongDesc != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.LongDesc)
	}
	fmt.Fprintf(&b, "\n  %-20s %s\n", "dataset ID", valueOr(rec.DataID))
	for _, column := range catalog.CategoricalColumns() {
		fmt.Fprintf(&b, "  %-20s %s\n", catalog.ColumnLabel(column), valueOr(rec.Value(column)))
	}
	if state.Role() == catalog.RoleAdmin {
		for _, column := range catalog.SensitiveColumns() {
			fmt.Fprintf(&b, "  %-20s %s  [admin only]\n", catalog.ColumnLabel(column), valueOr(rec.Value(column)))
		}
	}
	docs := linkeddocs.NewList()
	docs.InitializeFrom(rec.LinkedDocs)
	if docs.Len() > 0 {
		b.WriteString("\nlinked documents:\n")
		for _, entry := range docs.Entries() {
			fmt.Fprintf(&b, "  %s (%s)\n", entry.Label(), entry.Value())
		}
	}
	if err := c.prompt.Info(ctx, "%s", b.String()); err != nil {
		return err
	}

	if !state.CanEdit() {
		return nil
	}

	choice, err := c.prompt.Select(ctx, "Actions", []string{"Edit", "Delete", "Back"})
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		editor, err := c.app.EditRecord(ctx, rec.ID)
		if err != nil {
			return err
		}
		return c.edit(ctx, editor)
	case 1:
		confirmed, err := c.prompt.Confirm(ctx, fmt.Sprintf("Delete %q?", rec.Title()), false)
		if err != nil {
			return err
		}
		if confirmed {
			return c.app.Delete(ctx, rec.ID)
		}
	}
	return nil
}

func (c *cli) newRecord(ctx context.Context) error {
	editor, err := c.app.NewRecord(ctx)
	if err != nil {
		return err
	}
	return c.edit(ctx, editor)
}

// edit walks the form: free text first, then one prompt per schema control,
// then the linked-docs list.
func (c *cli) edit(ctx context.Context, editor *datacatalog.Editor) error {
	for _, column := range []string{catalog.ColumnDataID, catalog.ColumnShortDesc, catalog.ColumnLongDesc} {
		value, err := c.prompt.Input(ctx, catalog.ColumnLabel(column), editor.Field(column))
		if err != nil {
			return err
		}
		editor.SetField(column, value)
	}

	set := editor.Controls()
	for _, column := range set.Columns() {
		control, ok := set.Control(column)
		if !ok {
			continue
		}
		if err := c.promptControl(ctx, column, control); err != nil {
			return err
		}
	}

	if err := c.editDocs(ctx, editor); err != nil {
		return err
	}

	if c.app.State().Role() == catalog.RoleAdmin {
		for _, column := range catalog.SensitiveColumns() {
			value, err := c.prompt.Input(ctx, catalog.ColumnLabel(column), editor.Field(column))
			if err != nil {
				return err
			}
			editor.SetField(column, value)
		}
	}

	confirmed, err := c.prompt.Confirm(ctx, "Save record?", true)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	saved, err := c.app.Save(ctx, editor)
	if err != nil {
		return err
	}
	return c.prompt.Info(ctx, "saved %s", saved.Title())
}

func (c *cli) promptControl(ctx context.Context, column string, control controls.Control) error {
	label := catalog.ColumnLabel(column)
	allowed := control.Allowed()
	if len(allowed) == 0 {
		return nil
	}

	switch control.Kind() {
	case controls.KindMulti:
		picked, err := c.prompt.MultiSelect(ctx, label, allowed, control.Read())
		if err != nil {
			return err
		}
		control.Write(picked)
	default:
		options := append([]string{"(none)"}, allowed...)
		choice, err := c.prompt.Select(ctx, label, options)
		if err != nil {
			return err
		}
		if choice <= 0 {
			control.Write(nil)
		} else {
			control.Write([]string{allowed[choice-1]})
		}
	}
	return nil
}

func (c *cli) editDocs(ctx context.Context, editor *datacatalog.Editor) error {
	for {
		docs := editor.Docs()
		options := []string{"Add document"}
		for _, entry := range docs.Entries() {
			options = append(options, "Remove "+entry.Label())
		}
		options = append(options, "Done")

		choice, err := c.prompt.Select(ctx, fmt.Sprintf("Linked documents (%d)", docs.Len()), options)
		if err != nil {
			return err
		}
		switch {
		case choice == 0:
			value, err := c.prompt.Input(ctx, "Document path or URL", "")
			if err != nil {
				return err
			}
			if strings.TrimSpace(value) != "" {
				docs.Add(value)
			}
		case choice == len(options)-1:
			return nil
		default:
			entries := docs.Entries()
			docs.Remove(entries[choice-1])
		}
	}
}

func (c *cli) vocabulary(ctx context.Context) error {
	columns := catalog.CategoricalColumns()
	labels := make([]string, len(columns))
	for i, column := range columns {
		labels[i] = catalog.ColumnLabel(column)
	}

	choice, err := c.prompt.Select(ctx, "Column", labels)
	if err != nil {
		return err
	}
	column := columns[choice]

	options, err := c.app.Client().ColumnOptions(ctx)
	if err != nil {
		return err
	}
	current := options[column]

	actions := []string{"Add value"}
	for _, value := range current.Values {
		actions = append(actions, "Remove "+value)
	}
	actions = append(actions, "Back")

	action, err := c.prompt.Select(ctx, catalog.ColumnLabel(column), actions)
	if err != nil {
		return err
	}
	switch {
	case action == 0:
		value, err := c.prompt.Input(ctx, "New value", "")
		if err != nil {
			return err
		}
		return c.app.Client().AddColumnOption(ctx, column, value)
	case action == len(actions)-1:
		return nil
	default:
		return c.app.Client().DeleteColumnOption(ctx, column, current.Values[action-1])
	}
}

func valueOr(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}
