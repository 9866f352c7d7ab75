package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// seedFile is the YAML shape consumed by SeedFromFile.
type seedFile struct {
	ColumnOptions map[string]struct {
		IsMultiValue bool     `yaml:"is_multi_value"`
		Values       []string `yaml:"values"`
	} `yaml:"column_options"`
	Products []map[string]string `yaml:"products"`
}

// SeedFromFile loads column vocabulary and initial records from a YAML file.
// It is a no-op when the product table already has data, so restarts never
// duplicate the seed.
func (s *Store) SeedFromFile(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("store: count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("store: read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("store: parse seed file: %w", err)
	}

	for column, option := range seed.ColumnOptions {
		if !catalog.IsCategorical(column) {
			return fmt.Errorf("store: seed references unknown column %q", column)
		}
		if err := s.SetColumnMultiValue(ctx, column, option.IsMultiValue); err != nil {
			return err
		}
		for _, value := range option.Values {
			if err := s.AddColumnOption(ctx, column, value); err != nil {
				return err
			}
		}
	}

	for i, attrs := range seed.Products {
		var rec catalog.Record
		for column, value := range attrs {
			rec.SetValue(column, value)
		}
		if _, err := s.CreateProduct(ctx, rec); err != nil {
			return fmt.Errorf("store: seed product %d: %w", i, err)
		}
	}
	return nil
}
