package csvio

import (
	"encoding/csv"
	"io"

	"gstbill/internal/domain"
)

// ClientColumns is the header order for client catalogs.
var ClientColumns = []string{"Name", "Address", "Phone", "GSTIN", "Email"}

// ProductColumns is the header order for product catalogs.
var ProductColumns = []string{"Description", "HSN", "Price", "Category"}

// Clients maps rows onto client records.
func Clients(rows []Row) []domain.ClientRecord {
	out := make([]domain.ClientRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ClientRecord{
			Name:    r.Get("Name"),
			Address: r.Get("Address"),
			Phone:   r.Get("Phone"),
			GSTIN:   r.Get("GSTIN"),
			Email:   r.Get("Email"),
		})
	}
	return out
}

// Products maps rows onto product records.
func Products(rows []Row) []domain.ProductRecord {
	out := make([]domain.ProductRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ProductRecord{
			Description: r.Get("Description"),
			HSN:         r.Get("HSN"),
			Price:       r.Get("Price"),
			Category:    r.Get("Category"),
		})
	}
	return out
}

// ClientTable returns the header row followed by one row per client.
func ClientTable(clients []domain.ClientRecord) [][]string {
	table := make([][]string, 0, len(clients)+1)
	table = append(table, ClientColumns)
	for _, c := range clients {
		table = append(table, []string{c.Name, c.Address, c.Phone, c.GSTIN, c.Email})
	}
	return table
}

// ProductTable returns the header row followed by one row per product.
func ProductTable(products []domain.ProductRecord) [][]string {
	table := make([][]string, 0, len(products)+1)
	table = append(table, ProductColumns)
	for _, p := range products {
		table = append(table, []string{p.Description, p.HSN, p.Price, p.Category})
	}
	return table
}

// WriteTable writes the BOM followed by table as CSV.
func WriteTable(w io.Writer, table [][]string) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table); err != nil {
		return err
	}
	return cw.Error()
}
