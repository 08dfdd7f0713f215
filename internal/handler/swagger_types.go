package handler

import (
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/money"
	"gstbill/internal/service"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LineItemRequest is one line item as sent by the editor. Numeric fields
// accept numbers or strings; anything unparseable counts as zero.
type LineItemRequest struct {
	SNo          int            `json:"s_no" example:"1"`
	Description  string         `json:"description" example:"Steel rods"`
	HSNSAC       string         `json:"hsn_sac" example:"7214"`
	Quantity     money.Lenient  `json:"quantity" swaggertype:"string" example:"2"`
	UOM          string         `json:"uom" example:"NOS"`
	UnitPrice    money.Lenient  `json:"unit_price" swaggertype:"string" example:"590"`
	GSTRate      money.Lenient  `json:"gst_rate" swaggertype:"string" example:"18"`
	TaxableValue *money.Lenient `json:"taxable_value,omitempty" swaggertype:"string" example:"1000"`
}

func (r LineItemRequest) toLineItem() gst.LineItem {
	item := gst.LineItem{
		SNo:         r.SNo,
		Description: r.Description,
		HSNSAC:      r.HSNSAC,
		Quantity:    r.Quantity.Decimal(),
		UOM:         r.UOM,
		UnitPrice:   r.UnitPrice.Decimal(),
		GSTRate:     r.GSTRate.Decimal(),
	}
	if r.TaxableValue != nil {
		v := r.TaxableValue.Decimal()
		item.TaxableValue = &v
	}
	return item
}

func toLineItems(reqs []LineItemRequest) []gst.LineItem {
	items := make([]gst.LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, r.toLineItem())
	}
	return items
}

// DocumentRequest represents the create and update document request body.
type DocumentRequest struct {
	DocType               string                 `json:"doc_type" example:"Invoice"`
	GSTMode               string                 `json:"gst_mode" example:"auto"`
	Company               domain.CompanyInfo     `json:"company"`
	Client                domain.ClientInfo      `json:"client"`
	Shipping              domain.ClientInfo      `json:"shipping"`
	ShippingSameAsBilling bool                   `json:"shipping_same_as_billing"`
	Details               domain.DocumentDetails `json:"details"`
	Bank                  domain.BankInfo        `json:"bank"`
	Items                 []LineItemRequest      `json:"items"`
	TermsAndConditions    string                 `json:"terms_and_conditions"`
	UPIID                 string                 `json:"upi_id" example:"shop@upi"`
	IsSimpleMode          bool                   `json:"is_simple_mode"`
}

func (r *DocumentRequest) toInput() service.DocumentInput {
	return service.DocumentInput{
		DocType:               r.DocType,
		GSTMode:               r.GSTMode,
		Company:               r.Company,
		Client:                r.Client,
		Shipping:              r.Shipping,
		ShippingSameAsBilling: r.ShippingSameAsBilling,
		Details:               r.Details,
		Bank:                  r.Bank,
		Items:                 toLineItems(r.Items),
		TermsAndConditions:    r.TermsAndConditions,
		UPIID:                 r.UPIID,
		IsSimpleMode:          r.IsSimpleMode,
	}
}

// TotalsPreviewRequest represents the live totals request body.
type TotalsPreviewRequest struct {
	Items        []LineItemRequest `json:"items"`
	CompanyGSTIN string            `json:"company_gstin" example:"33AAAAA0000A1Z5"`
	ClientGSTIN  string            `json:"client_gstin" example:"29BBBBB0000B1Z5"`
	IsSimpleMode bool              `json:"is_simple_mode"`
	GSTMode      string            `json:"gst_mode" example:"auto"`
}

// ImportDocumentsRequest represents a bulk document import.
type ImportDocumentsRequest struct {
	Documents []domain.Document `json:"documents" binding:"required"`
}

// ValidateNumberRequest represents the number validation request body.
type ValidateNumberRequest struct {
	Number string `json:"number" example:"#12/2024"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"owner@shop.in"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"owner@shop.in"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" binding:"required" example:"Priya Raman"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// SaveCatalogRequest replaces a catalog. Only the list matching the path kind is read.
type SaveCatalogRequest struct {
	Clients  []domain.ClientRecord  `json:"clients"`
	Products []domain.ProductRecord `json:"products"`
}

// SheetImportRequest represents a Google Sheets import.
type SheetImportRequest struct {
	URL string `json:"url" binding:"required" example:"https://docs.google.com/spreadsheets/d/abc123/edit#gid=0"`
}

// RestoreArchiveRequest names an archived backup to restore.
type RestoreArchiveRequest struct {
	Key string `json:"key" binding:"required" example:"users/3f2a9c1e-5b7d-4e0a-9c61-2d8f4b7a1e90/backups/2024-06-01T09-30-00.json"`
}

// DraftEmailRequest selects the tone of an AI drafted follow-up.
type DraftEmailRequest struct {
	Tone string `json:"tone" example:"polite"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// NumberResponse carries a suggested document number.
type NumberResponse struct {
	Number string `json:"number" example:"#4/2024"`
}

// RecentNumbersResponse lists recently used numbers.
type RecentNumbersResponse struct {
	Numbers []string `json:"numbers"`
}

// DuplicateResponse reports whether a number is already taken.
type DuplicateResponse struct {
	Number string `json:"number" example:"#4/2024"`
	Exists bool   `json:"exists"`
}

// ValidateNumberResponse is a validation result with a corrected suggestion.
type ValidateNumberResponse struct {
	Valid      bool   `json:"valid"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty" example:"#42/2024"`
}

// CountResponse reports how many records an operation touched.
type CountResponse struct {
	Count int `json:"count"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
