package catalog

// Role is the authorization signal consulted when deciding which fields and
// controls to expose. It never bypasses the server's own checks.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
	RoleGuest    Role = "guest"
)

// AuthStatus mirrors the GET /api/user payload.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Role          Role   `json:"role,omitempty"`
}

// IsAdmin reports whether the session may see sensitive fields and mutate
// records.
func (s AuthStatus) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}

// Account mirrors the /api/users payloads.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ColumnOption is the per-column vocabulary metadata: whether the column
// accepts multiple tokens and which values are allowed. Values keep their
// insertion order, which is also the display order.
type ColumnOption struct {
	IsMultiValue bool     `json:"is_multi_value"`
	Values       []string `json:"values"`
}

// Has reports whether value is part of the allowed set.
func (o ColumnOption) Has(value string) bool {
	for _, v := range o.Values {
		if v == value {
			return true
		}
	}
	return false
}

// ColumnOptions maps categorical column names to their metadata, matching the
// GET /api/column-options payload.
type ColumnOptions map[string]ColumnOption

// FilterVocabulary maps facet keys to the distinct values currently in use,
// matching the GET /api/filters payload.
type FilterVocabulary map[string][]string

// Record is a catalog entry in its wire shape: every categorical and linked
// docs attribute is a single stored string. Multi-value attributes are only
// unpacked through pkg/delim; nothing else operates on the packed form.
type Record struct {
	ID        string `json:"id,omitempty"`
	DataID    string `json:"data_ID,omitempty"`
	ShortDesc string `json:"short_desc,omitempty"`
	LongDesc  string `json:"long_desc,omitempty"`

	AssetClass        string `json:"asset_class,omitempty"`
	Datatype          string `json:"datatype,omitempty"`
	DeliveryFrequency string `json:"delivery_frequency,omitempty"`
	DeliveryLag       string `json:"delivery_lag,omitempty"`
	DeliveryMethod    string `json:"delivery_method,omitempty"`
	Region            string `json:"region,omitempty"`
	Stage             string `json:"stage,omitempty"`
	Status            string `json:"status,omitempty"`
	Vendor            string `json:"vendor,omitempty"`

	LinkedDocs string `json:"linked_docs,omitempty"`

	// Sensitive attributes. The server omits these for non-admin sessions;
	// the detail view additionally gates them by role.
	User           string `json:"user,omitempty"`
	ContractStart  string `json:"contract_start,omitempty"`
	ContractEnd    string `json:"contract_end,omitempty"`
	Term           string `json:"term,omitempty"`
	AnnualCost     string `json:"annual_cost,omitempty"`
	PriceCap       string `json:"price_cap,omitempty"`
	UsePermissions string `json:"use_permissions,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Value returns the stored string for a column name, or the empty string when
// the column is unknown. A missing attribute is semantically empty.
func (r Record) Value(column string) string {
	switch column {
	case ColumnDataID:
		return r.DataID
	case ColumnShortDesc:
		return r.ShortDesc
	case ColumnLongDesc:
		return r.LongDesc
	case ColumnAssetClass:
		return r.AssetClass
	case ColumnDatatype:
		return r.Datatype
	case ColumnDeliveryFrequency:
		return r.DeliveryFrequency
	case ColumnDeliveryLag:
		return r.DeliveryLag
	case ColumnDeliveryMethod:
		return r.DeliveryMethod
	case ColumnRegion:
		return r.Region
	case ColumnStage:
		return r.Stage
	case ColumnStatus:
		return r.Status
	case ColumnVendor:
		return r.Vendor
	case ColumnLinkedDocs:
		return r.LinkedDocs
	case ColumnUser:
		return r.User
	case ColumnContractStart:
		return r.ContractStart
	case ColumnContractEnd:
		return r.ContractEnd
	case ColumnTerm:
		return r.Term
	case ColumnAnnualCost:
		return r.AnnualCost
	case ColumnPriceCap:
		return r.PriceCap
	case ColumnUsePermissions:
		return r.UsePermissions
	case ColumnNotes:
		return r.Notes
	}
	return ""
}

// SetValue stores value under a column name. Unknown columns are ignored; a
// write for an attribute that does not exist is a no-op, not an error.
func (r *Record) SetValue(column, value string) {
	switch column {
	case ColumnDataID:
		r.DataID = value
	case ColumnShortDesc:
		r.ShortDesc = value
	case ColumnLongDesc:
		r.LongDesc = value
	case ColumnAssetClass:
		r.AssetClass = value
	case ColumnDatatype:
		r.Datatype = value
	case ColumnDeliveryFrequency:
		r.DeliveryFrequency = value
	case ColumnDeliveryLag:
		r.DeliveryLag = value
	case ColumnDeliveryMethod:
		r.DeliveryMethod = value
	case ColumnRegion:
		r.Region = value
	case ColumnStage:
		r.Stage = value
	case ColumnStatus:
		r.Status = value
	case ColumnVendor:
		r.Vendor = value
	case ColumnLinkedDocs:
		r.LinkedDocs = value
	case ColumnUser:
		r.User = value
	case ColumnContractStart:
		r.ContractStart = value
	case ColumnContractEnd:
		r.ContractEnd = value
	case ColumnTerm:
		r.Term = value
	case ColumnAnnualCost:
		r.AnnualCost = value
	case ColumnPriceCap:
		r.PriceCap = value
	case ColumnUsePermissions:
		r.UsePermissions = value
	case ColumnNotes:
		r.Notes = value
	}
}

// Title returns the display title for a record: the short description when
// present, otherwise the dataset identifier.
func (r Record) Title() string {
	if r.ShortDesc != "" {
		return r.ShortDesc
	}
	return r.DataID
}
