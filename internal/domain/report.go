package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is a named date-range preset.
type ReportPeriod string

const (
	PeriodThisMonth ReportPeriod = "thisMonth"
	PeriodLastMonth ReportPeriod = "lastMonth"
	PeriodThisYear  ReportPeriod = "thisYear"
	PeriodLastYear  ReportPeriod = "lastYear"
	PeriodCustom    ReportPeriod = "custom"
)

// DocTypeAll disables the document type filter.
const DocTypeAll DocumentType = "All"

// ReportFilters narrows the documents a report covers. Start and End are
// inclusive calendar days.
type ReportFilters struct {
	Period  ReportPeriod `json:"period"`
	Start   time.Time    `json:"start"`
	End     time.Time    `json:"end"`
	DocType DocumentType `json:"doc_type"`
}

// SalesTotals are the summed money columns of a report.
type SalesTotals struct {
	Sales   decimal.Decimal `json:"sales"`
	Taxable decimal.Decimal `json:"taxable"`
	GST     decimal.Decimal `json:"gst"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	IGST    decimal.Decimal `json:"igst"`
}

// MonthlySales is one YYYY-MM bucket.
type MonthlySales struct {
	Month string          `json:"month"`
	Sales decimal.Decimal `json:"sales"`
	GST   decimal.Decimal `json:"gst"`
	Count int             `json:"count"`
}

// ClientSales ranks a client by billed amount.
type ClientSales struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// PeriodComparison compares a report with the window of equal length
// immediately before it.
type PeriodComparison struct {
	PreviousStart      time.Time       `json:"previous_start"`
	PreviousEnd        time.Time       `json:"previous_end"`
	PreviousSales      decimal.Decimal `json:"previous_sales"`
	PreviousDocuments  int             `json:"previous_documents"`
	SalesChangePercent decimal.Decimal `json:"sales_change_percent"`
	DocumentChange     int             `json:"document_change"`
}

// SalesReport is the full report for one filter set.
type SalesReport struct {
	Filters        ReportFilters        `json:"filters"`
	GeneratedAt    time.Time            `json:"generated_at"`
	Totals         SalesTotals          `json:"totals"`
	DocumentCounts map[DocumentType]int `json:"document_counts"`
	TotalDocuments int                  `json:"total_documents"`
	Monthly        []MonthlySales       `json:"monthly"`
	TopClients     []ClientSales        `json:"top_clients"`
	Comparison     *PeriodComparison    `json:"comparison,omitempty"`
}
