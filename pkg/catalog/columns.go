package catalog

import "strings"

// Column names as they appear on the wire. Multi-value columns pack their
// token sequence into a single delimited string; see pkg/delim.
const (
	ColumnDataID            = "data_ID"
	ColumnShortDesc         = "short_desc"
	ColumnLongDesc          = "long_desc"
	ColumnAssetClass        = "asset_class"
	ColumnDatatype          = "datatype"
	ColumnDeliveryFrequency = "delivery_frequency"
	ColumnDeliveryLag       = "delivery_lag"
	ColumnDeliveryMethod    = "delivery_method"
	ColumnRegion            = "region"
	ColumnStage             = "stage"
	ColumnStatus            = "status"
	ColumnVendor            = "vendor"
	ColumnLinkedDocs        = "linked_docs"

	ColumnUser           = "user"
	ColumnContractStart  = "contract_start"
	ColumnContractEnd    = "contract_end"
	ColumnTerm           = "term"
	ColumnAnnualCost     = "annual_cost"
	ColumnPriceCap       = "price_cap"
	ColumnUsePermissions = "use_permissions"
	ColumnNotes          = "notes"
)

var categoricalColumns = []string{
	ColumnAssetClass,
	ColumnDatatype,
	ColumnDeliveryFrequency,
	ColumnDeliveryLag,
	ColumnDeliveryMethod,
	ColumnRegion,
	ColumnStage,
	ColumnStatus,
	ColumnVendor,
}

var sensitiveColumns = []string{
	ColumnUser,
	ColumnContractStart,
	ColumnContractEnd,
	ColumnTerm,
	ColumnAnnualCost,
	ColumnPriceCap,
	ColumnUsePermissions,
	ColumnNotes,
}

// CategoricalColumns returns the column names whose values come from the
// controlled vocabulary, in display order.
func CategoricalColumns() []string {
	return append([]string{}, categoricalColumns...)
}

// SensitiveColumns returns the admin-only column names in display order.
func SensitiveColumns() []string {
	return append([]string{}, sensitiveColumns...)
}

// IsSensitive reports whether a column is visible only to admin sessions.
func IsSensitive(column string) bool {
	for _, name := range sensitiveColumns {
		if name == column {
			return true
		}
	}
	return false
}

// IsCategorical reports whether a column is backed by the controlled
// vocabulary.
func IsCategorical(column string) bool {
	for _, name := range categoricalColumns {
		if name == column {
			return true
		}
	}
	return false
}

// ColumnLabel derives the human-readable label for a column name.
func ColumnLabel(column string) string {
	return strings.ReplaceAll(column, "_", " ")
}

// Facet keys used by the filter selection and the /api/filters payload.
const (
	FacetCategories   = "categories"
	FacetStatuses     = "statuses"
	FacetStages       = "stages"
	FacetRegions      = "regions"
	FacetVendors      = "vendors"
	FacetAssetClasses = "asset_classes"
)

var facetColumns = map[string]string{
	FacetCategories:   ColumnDatatype,
	FacetStatuses:     ColumnStatus,
	FacetStages:       ColumnStage,
	FacetRegions:      ColumnRegion,
	FacetVendors:      ColumnVendor,
	FacetAssetClasses: ColumnAssetClass,
}

var facetKeys = []string{
	FacetCategories,
	FacetStatuses,
	FacetStages,
	FacetRegions,
	FacetVendors,
	FacetAssetClasses,
}

// FacetKeys returns every facet key in display order.
func FacetKeys() []string {
	return append([]string{}, facetKeys...)
}

// FacetColumn resolves a facet key to the record column it filters on.
func FacetColumn(key string) (string, bool) {
	column, ok := facetColumns[key]
	return column, ok
}
