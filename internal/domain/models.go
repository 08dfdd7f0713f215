package domain

import (
	"time"

	"github.com/google/uuid"

	"gstbill/internal/gst"
)

// User is an account that owns documents and catalogs.
type User struct {
	ID           uuid.UUID `db:"id" json:"id" bson:"_id"`
	Email        string    `db:"email" json:"email" bson:"email"`
	PasswordHash string    `db:"password_hash" json:"-" bson:"password_hash"`
	FullName     string    `db:"full_name" json:"full_name" bson:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at" bson:"updated_at"`
}

// CompanyInfo is the issuing business as printed on a document.
type CompanyInfo struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email" bson:"email"`
	GSTIN   string `json:"gstin" bson:"gstin"`
	Website string `json:"website" bson:"website"`
}

// ClientInfo is a billing or shipping party.
type ClientInfo struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	GSTIN   string `json:"gstin" bson:"gstin"`
	Email   string `json:"email" bson:"email"`
}

// DocumentDetails holds the number and dates. Dates are YYYY-MM-DD strings
// as entered.
type DocumentDetails struct {
	Number        string `json:"number" bson:"number"`
	IssueDate     string `json:"issue_date" bson:"issue_date"`
	ValidUntil    string `json:"valid_until" bson:"valid_until"`
	PlaceOfSupply string `json:"place_of_supply" bson:"place_of_supply"`
	DeliveryDate  string `json:"delivery_date" bson:"delivery_date"`
}

// BankInfo is printed in the payment section.
type BankInfo struct {
	BankName      string `json:"bank_name" bson:"bank_name"`
	AccountNumber string `json:"account_number" bson:"account_number"`
	BranchName    string `json:"branch_name" bson:"branch_name"`
	IFSCCode      string `json:"ifsc_code" bson:"ifsc_code"`
}

// Document is a saved invoice, quotation or purchase order. Totals are
// always derived from Items on save.
type Document struct {
	ID                    uuid.UUID       `json:"id" bson:"_id"`
	UserID                uuid.UUID       `json:"user_id" bson:"user_id"`
	DocType               DocumentType    `json:"doc_type" bson:"doc_type"`
	Company               CompanyInfo     `json:"company" bson:"company"`
	Client                ClientInfo      `json:"client" bson:"client"`
	Shipping              ClientInfo      `json:"shipping" bson:"shipping"`
	ShippingSameAsBilling bool            `json:"shipping_same_as_billing" bson:"shipping_same_as_billing"`
	Details               DocumentDetails `json:"details" bson:"details"`
	Bank                  BankInfo        `json:"bank" bson:"bank"`
	Items                 []gst.LineItem  `json:"items" bson:"items"`
	Totals                gst.Totals      `json:"totals" bson:"totals"`
	TermsAndConditions    string          `json:"terms_and_conditions" bson:"terms_and_conditions"`
	UPIID                 string          `json:"upi_id" bson:"upi_id"`
	IsSimpleMode          bool            `json:"is_simple_mode" bson:"is_simple_mode"`
	GSTMode               gst.Mode        `json:"gst_mode" bson:"gst_mode"`
	CreatedAt             time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at" bson:"updated_at"`
}

// Recompute refreshes Totals from the current items and GSTINs.
func (d *Document) Recompute() {
	d.Totals = gst.ComputeTotals(d.Items, d.Company.GSTIN, d.Client.GSTIN, d.IsSimpleMode, d.GSTMode)
}

// ClientRecord is one row of a user's client catalog.
type ClientRecord struct {
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone" bson:"phone"`
	GSTIN   string `json:"gstin" bson:"gstin"`
	Email   string `json:"email" bson:"email"`
}

// Info converts the record into the party block of a document.
func (r ClientRecord) Info() ClientInfo {
	return ClientInfo(r)
}

// ProductRecord is one row of a user's product catalog. Price keeps the
// imported text; it is parsed when applied to a line item.
type ProductRecord struct {
	Description string `json:"description" bson:"description"`
	HSN         string `json:"hsn" bson:"hsn"`
	Price       string `json:"price" bson:"price"`
	Category    string `json:"category" bson:"category"`
}

// Catalog is a user's client or product list. Only the slice matching Kind
// is populated.
type Catalog struct {
	UserID      uuid.UUID       `json:"user_id" bson:"user_id"`
	Kind        CatalogKind     `json:"kind" bson:"kind"`
	Clients     []ClientRecord  `json:"clients,omitempty" bson:"clients,omitempty"`
	Products    []ProductRecord `json:"products,omitempty" bson:"products,omitempty"`
	Source      CatalogSource   `json:"source" bson:"source"`
	SheetURL    string          `json:"sheet_url" bson:"sheet_url"`
	LastUpdated time.Time       `json:"last_updated" bson:"last_updated"`
}

// Count returns the number of records for the catalog's kind.
func (c *Catalog) Count() int {
	if c.Kind == CatalogProducts {
		return len(c.Products)
	}
	return len(c.Clients)
}

// CatalogInfo summarises a catalog without its records.
type CatalogInfo struct {
	Kind        CatalogKind   `json:"kind"`
	LastUpdated *time.Time    `json:"last_updated"`
	Source      CatalogSource `json:"source"`
	SheetURL    string        `json:"sheet_url"`
	Count       int           `json:"count"`
}
