// Package repository holds the storage-neutral pieces shared by the
// postgres and mongo backends.
package repository

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gstbill/internal/docnumber"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

// SanitizeDocument fills every optional field with its type's safe default
// so that no persisted document carries a missing value. Both backends call
// it immediately before writing.
func SanitizeDocument(doc *domain.Document) {
	if doc.DocType == "" {
		doc.DocType = domain.DocTypeInvoice
	}
	if doc.GSTMode == "" {
		doc.GSTMode = gst.ModeAuto
	}
	if strings.TrimSpace(doc.Details.Number) == "" {
		doc.Details.Number = docnumber.Format(1, documentYear(doc))
	}
	if doc.Items == nil {
		doc.Items = []gst.LineItem{}
	}
	for i := range doc.Items {
		item := &doc.Items[i]
		if item.UOM == "" {
			item.UOM = gst.DefaultUOM
		}
		if doc.IsSimpleMode && item.TaxableValue == nil {
			zero := decimal.Zero
			item.TaxableValue = &zero
		}
	}
}

// documentYear is the year a number-less document belongs to: its issue
// date, else its creation time, else the current year.
func documentYear(doc *domain.Document) int {
	if t, err := time.Parse("2006-01-02", doc.Details.IssueDate); err == nil {
		return t.Year()
	}
	if !doc.CreatedAt.IsZero() {
		return doc.CreatedAt.Year()
	}
	return time.Now().UTC().Year()
}

// SanitizeCatalog normalizes a catalog before it is written.
func SanitizeCatalog(c *domain.Catalog) {
	if c.Source == "" {
		c.Source = domain.SourceManual
	}
	switch c.Kind {
	case domain.CatalogProducts:
		if c.Products == nil {
			c.Products = []domain.ProductRecord{}
		}
		c.Clients = nil
		for i := range c.Products {
			p := &c.Products[i]
			p.Description = strings.TrimSpace(p.Description)
			p.HSN = strings.TrimSpace(p.HSN)
			p.Price = strings.TrimSpace(p.Price)
			p.Category = strings.TrimSpace(p.Category)
		}
	default:
		if c.Clients == nil {
			c.Clients = []domain.ClientRecord{}
		}
		c.Products = nil
		for i := range c.Clients {
			r := &c.Clients[i]
			r.Name = strings.TrimSpace(r.Name)
			r.Address = strings.TrimSpace(r.Address)
			r.Phone = strings.TrimSpace(r.Phone)
			r.GSTIN = strings.TrimSpace(r.GSTIN)
			r.Email = strings.TrimSpace(r.Email)
		}
	}
}
