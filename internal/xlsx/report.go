package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

// WriteReport writes a sales report as a workbook with Summary, Monthly and
// Top Clients sheets.
func WriteReport(w io.Writer, report *domain.SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, "Summary"); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeRows(f, "Summary", summaryRows(report)); err != nil {
		return err
	}

	monthly := [][]interface{}{{"Month", "Sales", "GST", "Documents"}}
	for _, m := range report.Monthly {
		monthly = append(monthly, []interface{}{m.Month, m.Sales.InexactFloat64(), m.GST.InexactFloat64(), m.Count})
	}
	if err := addSheet(f, "Monthly", monthly); err != nil {
		return err
	}

	clients := [][]interface{}{{"Rank", "Client", "Amount", "Documents"}}
	for i, c := range report.TopClients {
		clients = append(clients, []interface{}{i + 1, c.Name, c.Amount.InexactFloat64(), c.Count})
	}
	if err := addSheet(f, "Top Clients", clients); err != nil {
		return err
	}

	return f.Write(w)
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("adding sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func summaryRows(report *domain.SalesReport) [][]interface{} {
	t := report.Totals
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Period", string(report.Filters.Period)},
		{"From", report.Filters.Start.Format("2006-01-02")},
		{"To", report.Filters.End.Format("2006-01-02")},
		{"Document Type", string(report.Filters.DocType)},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{"Total Sales", t.Sales.InexactFloat64()},
		{"Taxable Value", t.Taxable.InexactFloat64()},
		{"Total GST", t.GST.InexactFloat64()},
		{"CGST", t.CGST.InexactFloat64()},
		{"SGST", t.SGST.InexactFloat64()},
		{"IGST", t.IGST.InexactFloat64()},
		{"Documents", report.TotalDocuments},
	}
	for _, dt := range domain.AllDocumentTypes {
		rows = append(rows, []interface{}{string(dt), report.DocumentCounts[dt]})
	}
	if c := report.Comparison; c != nil {
		rows = append(rows,
			[]interface{}{"Previous Sales", c.PreviousSales.InexactFloat64()},
			[]interface{}{"Sales Change %", c.SalesChangePercent.InexactFloat64()},
			[]interface{}{"Document Change", c.DocumentChange},
		)
	}
	return rows
}
