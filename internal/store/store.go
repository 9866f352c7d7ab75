// Package store persists catalog data behind gorm, supporting sqlite for
// development and postgres for deployments. All methods take a context and
// return wire-shaped types from pkg/catalog; gorm rows never cross the
// package boundary.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/teris-io/shortid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
	"github.com/goliatone/go-datacatalog/pkg/delim"
)

var (
	// ErrNotFound is returned when a record or account does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateUsername is returned when creating an account whose
	// username is already taken.
	ErrDuplicateUsername = errors.New("store: username already exists")
)

// Store wraps the database handle.
type Store struct {
	db  *gorm.DB
	sid *shortid.Shortid
}

// Open connects to the configured database. Supported drivers are "sqlite"
// and "postgres".
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}

	sid, err := shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		return nil, fmt.Errorf("store: init id generator: %w", err)
	}

	return &Store{db: db, sid: sid}, nil
}

// Migrate creates or updates the schema.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&Product{},
		&User{},
		&ColumnSetting{},
		&ColumnOptionValue{},
	)
}

// EnsureDefaultUsers creates the bootstrap accounts when the user table is
// empty: admin/admin and user/user. Deployments are expected to rotate these
// immediately.
func (s *Store) EnsureDefaultUsers(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("store: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username, password string
		role               catalog.Role
	}{
		{"admin", "admin", catalog.RoleAdmin},
		{"user", "user", catalog.RoleStandard},
	}
	for _, d := range defaults {
		user := User{Username: d.username, Role: string(d.role)}
		if err := user.SetPassword(d.password); err != nil {
			return fmt.Errorf("store: hash default password: %w", err)
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("store: create default user %q: %w", d.username, err)
		}
	}
	return nil
}

// Products lists every record in insertion order.
func (s *Store) Products(ctx context.Context, includeSensitive bool) ([]catalog.Record, error) {
	var rows []Product
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list products: %w", err)
	}
	records := make([]catalog.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record(includeSensitive))
	}
	return records, nil
}

// Product fetches a single record by ID.
func (s *Store) Product(ctx context.Context, id string, includeSensitive bool) (catalog.Record, error) {
	var row Product
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Record{}, ErrNotFound
	}
	if err != nil {
		return catalog.Record{}, fmt.Errorf("store: fetch product %q: %w", id, err)
	}
	return row.Record(includeSensitive), nil
}

// CreateProduct persists a new record and returns it with its generated ID.
func (s *Store) CreateProduct(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	id, err := s.sid.Generate()
	if err != nil {
		return catalog.Record{}, fmt.Errorf("store: generate product id: %w", err)
	}

	row := Product{ID: id}
	row.Apply(rec)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return catalog.Record{}, fmt.Errorf("store: create product: %w", err)
	}
	return row.Record(true), nil
}

// UpdateProduct overwrites an existing record's attributes.
func (s *Store) UpdateProduct(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	var row Product
	err := s.db.WithContext(ctx).First(&row, "id = ?", rec.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Record{}, ErrNotFound
	}
	if err != nil {
		return catalog.Record{}, fmt.Errorf("store: fetch product %q: %w", rec.ID, err)
	}

	row.Apply(rec)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return catalog.Record{}, fmt.Errorf("store: update product %q: %w", rec.ID, err)
	}
	return row.Record(true), nil
}

// DeleteProduct removes a record.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("store: delete product %q: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Users lists every account.
func (s *Store) Users(ctx context.Context) ([]catalog.Account, error) {
	var rows []User
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	accounts := make([]catalog.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.Account())
	}
	return accounts, nil
}

// Authenticate verifies credentials and returns the matching account.
func (s *Store) Authenticate(ctx context.Context, username, password string) (catalog.Account, error) {
	var row User
	err := s.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Account{}, ErrNotFound
	}
	if err != nil {
		return catalog.Account{}, fmt.Errorf("store: fetch user %q: %w", username, err)
	}
	if !row.CheckPassword(password) {
		return catalog.Account{}, ErrNotFound
	}
	return row.Account(), nil
}

// CreateUser adds an account with a hashed password.
func (s *Store) CreateUser(ctx context.Context, username, password string, role catalog.Role) (catalog.Account, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return catalog.Account{}, fmt.Errorf("store: check username: %w", err)
	}
	if count > 0 {
		return catalog.Account{}, ErrDuplicateUsername
	}

	user := User{Username: username, Role: string(role)}
	if err := user.SetPassword(password); err != nil {
		return catalog.Account{}, fmt.Errorf("store: hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return catalog.Account{}, fmt.Errorf("store: create user %q: %w", username, err)
	}
	return user.Account(), nil
}

// DeleteUser removes an account by ID.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("store: delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FilterVocabulary derives the facet checklist values from the data itself:
// each facet lists the distinct tokens currently in use, sorted. Packed
// multi-value attributes contribute each token separately.
func (s *Store) FilterVocabulary(ctx context.Context) (catalog.FilterVocabulary, error) {
	var rows []Product
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load products for vocabulary: %w", err)
	}

	vocab := make(catalog.FilterVocabulary, len(catalog.FacetKeys()))
	for _, key := range catalog.FacetKeys() {
		column, ok := catalog.FacetColumn(key)
		if !ok {
			continue
		}
		seen := make(map[string]struct{})
		var values []string
		for _, row := range rows {
			for _, token := range delim.Decode(row.Record(false).Value(column), delim.Comma) {
				if _, ok := seen[token]; ok {
					continue
				}
				seen[token] = struct{}{}
				values = append(values, token)
			}
		}
		sort.Slice(values, func(i, j int) bool {
			return strings.ToLower(values[i]) < strings.ToLower(values[j])
		})
		vocab[key] = values
	}
	return vocab, nil
}

// ColumnOptions loads the per-column vocabulary metadata for the form layer.
func (s *Store) ColumnOptions(ctx context.Context) (catalog.ColumnOptions, error) {
	var settings []ColumnSetting
	if err := s.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("store: load column settings: %w", err)
	}
	multi := make(map[string]bool, len(settings))
	for _, setting := range settings {
		multi[setting.Column] = setting.MultiValue
	}

	var values []ColumnOptionValue
	if err := s.db.WithContext(ctx).Order("column_name, position, id").Find(&values).Error; err != nil {
		return nil, fmt.Errorf("store: load column options: %w", err)
	}

	options := make(catalog.ColumnOptions)
	for _, column := range catalog.CategoricalColumns() {
		options[column] = catalog.ColumnOption{IsMultiValue: multi[column]}
	}
	for _, value := range values {
		option := options[value.Column]
		option.Values = append(option.Values, value.Value)
		options[value.Column] = option
	}
	return options, nil
}

// AddColumnOption appends a vocabulary value for a column. Adding an
// existing value is a no-op.
func (s *Store) AddColumnOption(ctx context.Context, column, value string) error {
	if !catalog.IsCategorical(column) {
		return fmt.Errorf("store: column %q has no vocabulary", column)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("store: vocabulary value is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&ColumnOptionValue{}).
		Where("column_name = ? AND value = ?", column, value).
		Count(&count).Error; err != nil {
		return fmt.Errorf("store: check column option: %w", err)
	}
	if count > 0 {
		return nil
	}

	var position int
	row := s.db.WithContext(ctx).Model(&ColumnOptionValue{}).
		Where("column_name = ?", column).
		Select("COALESCE(MAX(position), -1) + 1").
		Row()
	if err := row.Scan(&position); err != nil {
		return fmt.Errorf("store: next option position: %w", err)
	}

	entry := ColumnOptionValue{Column: column, Value: value, Position: position}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("store: add column option: %w", err)
	}
	return nil
}

// DeleteColumnOption removes a vocabulary value from a column.
func (s *Store) DeleteColumnOption(ctx context.Context, column, value string) error {
	result := s.db.WithContext(ctx).
		Where("column_name = ? AND value = ?", column, value).
		Delete(&ColumnOptionValue{})
	if result.Error != nil {
		return fmt.Errorf("store: delete column option: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetColumnMultiValue flips whether a column accepts multiple tokens.
func (s *Store) SetColumnMultiValue(ctx context.Context, column string, multi bool) error {
	if !catalog.IsCategorical(column) {
		return fmt.Errorf("store: column %q has no vocabulary", column)
	}
	setting := ColumnSetting{Column: column, MultiValue: multi}
	if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return fmt.Errorf("store: set column mode: %w", err)
	}
	return nil
}
