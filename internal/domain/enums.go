package domain

// DocumentType is the kind of business document being issued.
type DocumentType string

const (
	DocTypeInvoice       DocumentType = "Invoice"
	DocTypeQuotation     DocumentType = "Quotation"
	DocTypePurchaseOrder DocumentType = "Purchase Order"
)

// ValidDocumentTypes is the set of accepted document types.
var ValidDocumentTypes = map[DocumentType]bool{
	DocTypeInvoice:       true,
	DocTypeQuotation:     true,
	DocTypePurchaseOrder: true,
}

// AllDocumentTypes lists document types in display order.
var AllDocumentTypes = []DocumentType{DocTypeInvoice, DocTypeQuotation, DocTypePurchaseOrder}

// ParseDocumentType validates a request value. The empty string maps to Invoice.
func ParseDocumentType(s string) (DocumentType, error) {
	if s == "" {
		return DocTypeInvoice, nil
	}
	t := DocumentType(s)
	if !ValidDocumentTypes[t] {
		return "", ErrInvalidDocumentType
	}
	return t, nil
}

// CatalogKind identifies one of the two per-user catalogs.
type CatalogKind string

const (
	CatalogClients  CatalogKind = "clients"
	CatalogProducts CatalogKind = "products"
)

// ValidCatalogKinds is the set of accepted catalog kinds.
var ValidCatalogKinds = map[CatalogKind]bool{
	CatalogClients:  true,
	CatalogProducts: true,
}

// CatalogSource records where a catalog's records last came from.
type CatalogSource string

const (
	SourceManual       CatalogSource = "manual"
	SourceGoogleSheets CatalogSource = "google_sheets"
	SourceCSV          CatalogSource = "csv"
	SourceXLSX         CatalogSource = "xlsx"
)
