package store

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// Product is the persisted shape of a catalog record. The primary key is an
// opaque short ID generated at creation; data_ID remains a human-facing
// label with no uniqueness guarantee.
type Product struct {
	ID        string `gorm:"primaryKey;size:16"`
	DataID    string `gorm:"column:data_id;index"`
	ShortDesc string
	LongDesc  string

	AssetClass        string
	Datatype          string
	DeliveryFrequency string
	DeliveryLag       string
	DeliveryMethod    string
	Region            string
	Stage             string
	Status            string
	Vendor            string `gorm:"index"`

	LinkedDocs string

	ContactUser    string `gorm:"column:user"`
	ContractStart  string
	ContractEnd    string
	Term           string
	AnnualCost     string
	PriceCap       string
	UsePermissions string
	Notes          string
}

// TableName keeps the table name stable across gorm naming changes.
func (Product) TableName() string { return "data_products" }

// Record converts the row to its wire shape. Sensitive columns are included
// only when requested; non-admin payloads never carry them.
func (p Product) Record(includeSensitive bool) catalog.Record {
	rec := catalog.Record{
		ID:                p.ID,
		DataID:            p.DataID,
		ShortDesc:         p.ShortDesc,
		LongDesc:          p.LongDesc,
		AssetClass:        p.AssetClass,
		Datatype:          p.Datatype,
		DeliveryFrequency: p.DeliveryFrequency,
		DeliveryLag:       p.DeliveryLag,
		DeliveryMethod:    p.DeliveryMethod,
		Region:            p.Region,
		Stage:             p.Stage,
		Status:            p.Status,
		Vendor:            p.Vendor,
		LinkedDocs:        p.LinkedDocs,
	}
	if includeSensitive {
		rec.User = p.ContactUser
		rec.ContractStart = p.ContractStart
		rec.ContractEnd = p.ContractEnd
		rec.Term = p.Term
		rec.AnnualCost = p.AnnualCost
		rec.PriceCap = p.PriceCap
		rec.UsePermissions = p.UsePermissions
		rec.Notes = p.Notes
	}
	return rec
}

// Apply copies a wire record's attributes onto the row. The ID is never
// taken from the payload.
func (p *Product) Apply(rec catalog.Record) {
	p.DataID = rec.DataID
	p.ShortDesc = rec.ShortDesc
	p.LongDesc = rec.LongDesc
	p.AssetClass = rec.AssetClass
	p.Datatype = rec.Datatype
	p.DeliveryFrequency = rec.DeliveryFrequency
	p.DeliveryLag = rec.DeliveryLag
	p.DeliveryMethod = rec.DeliveryMethod
	p.Region = rec.Region
	p.Stage = rec.Stage
	p.Status = rec.Status
	p.Vendor = rec.Vendor
	p.LinkedDocs = rec.LinkedDocs
	p.ContactUser = rec.User
	p.ContractStart = rec.ContractStart
	p.ContractEnd = rec.ContractEnd
	p.Term = rec.Term
	p.AnnualCost = rec.AnnualCost
	p.PriceCap = rec.PriceCap
	p.UsePermissions = rec.UsePermissions
	p.Notes = rec.Notes
}

// User is an account row. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string
	Role         string `gorm:"size:16"`
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Account converts the row to its wire shape. The hash never leaves the
// store.
func (u User) Account() catalog.Account {
	return catalog.Account{ID: u.ID, Username: u.Username, Role: catalog.Role(u.Role)}
}

// ColumnSetting records whether a categorical column accepts multiple
// tokens. Flipping this bit is what forces the form layer to rebuild its
// controls.
type ColumnSetting struct {
	Column     string `gorm:"primaryKey;size:64"`
	MultiValue bool
}

// ColumnOptionValue is one allowed vocabulary value for a column. Position
// preserves insertion order, which is also the display order.
type ColumnOptionValue struct {
	ID       int64  `gorm:"primaryKey"`
	Column   string `gorm:"column:column_name;uniqueIndex:idx_column_value;size:64"`
	Value    string `gorm:"uniqueIndex:idx_column_value;size:255"`
	Position int
}
