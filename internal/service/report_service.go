package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbill/internal/csvio"
	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/xlsx"
)

const (
	dateLayout     = "2006-01-02"
	topClientLimit = 10
	unknownClient  = "Unknown Client"
)

// ReportInput is the raw query of a sales report request. Start and End are
// YYYY-MM-DD and only read for the custom period.
type ReportInput struct {
	Period  string
	Start   string
	End     string
	DocType string
}

// ReportService builds sales reports over a user's saved documents.
type ReportService interface {
	Sales(ctx context.Context, userID uuid.UUID, input ReportInput) (*domain.SalesReport, error)
	ExportXLSX(ctx context.Context, userID uuid.UUID, input ReportInput, w io.Writer) (string, error)
	ExportPDF(ctx context.Context, userID uuid.UUID, input ReportInput) ([]byte, string, error)
}

type reportService struct {
	docRepo  port.DocumentRepository
	renderer port.DocumentRenderer
	now      func() time.Time
}

// NewReportService creates a new ReportService. renderer may be nil, in which
// case PDF export reports domain.ErrRendererUnavailable.
func NewReportService(docRepo port.DocumentRepository, renderer port.DocumentRenderer) ReportService {
	return NewReportServiceWithClock(docRepo, renderer, time.Now)
}

// NewReportServiceWithClock is NewReportService with an injected clock.
func NewReportServiceWithClock(docRepo port.DocumentRepository, renderer port.DocumentRenderer, now func() time.Time) ReportService {
	return &reportService{docRepo: docRepo, renderer: renderer, now: now}
}

func (s *reportService) Sales(ctx context.Context, userID uuid.UUID, input ReportInput) (*domain.SalesReport, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	filters, err := s.resolveFilters(input)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reportService.Sales: %w", err)
	}

	current := filterDocuments(docs, filters.Start, filters.End, filters.DocType)
	report := summarize(current)
	report.Filters = filters
	report.GeneratedAt = s.now().UTC()

	prevEnd := filters.Start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -daysBetween(filters.Start, filters.End))
	previous := filterDocuments(docs, prevStart, prevEnd, filters.DocType)
	report.Comparison = compare(report, previous, prevStart, prevEnd)

	return report, nil
}

func (s *reportService) ExportXLSX(ctx context.Context, userID uuid.UUID, input ReportInput, w io.Writer) (string, error) {
	report, err := s.Sales(ctx, userID, input)
	if err != nil {
		return "", err
	}
	if err := xlsx.WriteReport(w, report); err != nil {
		return "", fmt.Errorf("reportService.ExportXLSX: %w", err)
	}
	return csvio.BuildFilename("sales_report", "xlsx", s.now()), nil
}

func (s *reportService) ExportPDF(ctx context.Context, userID uuid.UUID, input ReportInput) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", domain.ErrRendererUnavailable
	}
	report, err := s.Sales(ctx, userID, input)
	if err != nil {
		return nil, "", err
	}
	data, err := s.renderer.RenderReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reportService.ExportPDF: %w", err)
	}
	return data, csvio.BuildFilename("sales_report", "pdf", s.now()), nil
}

// resolveFilters turns a preset or custom range into inclusive calendar days.
// An empty period means this year.
func (s *reportService) resolveFilters(input ReportInput) (domain.ReportFilters, error) {
	docType := domain.DocTypeAll
	if input.DocType != "" && input.DocType != string(domain.DocTypeAll) {
		t, err := domain.ParseDocumentType(input.DocType)
		if err != nil {
			return domain.ReportFilters{}, err
		}
		docType = t
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	period := domain.ReportPeriod(input.Period)
	if period == "" {
		period = domain.PeriodThisYear
	}

	f := domain.ReportFilters{Period: period, DocType: docType}
	switch period {
	case domain.PeriodThisMonth:
		f.Start, f.End = thisMonth, today
	case domain.PeriodLastMonth:
		f.Start, f.End = thisMonth.AddDate(0, -1, 0), thisMonth.AddDate(0, 0, -1)
	case domain.PeriodThisYear:
		f.Start, f.End = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), today
	case domain.PeriodLastYear:
		f.Start = time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC)
		f.End = time.Date(now.Year()-1, 12, 31, 0, 0, 0, 0, time.UTC)
	case domain.PeriodCustom:
		start, err := time.Parse(dateLayout, input.Start)
		if err != nil {
			return domain.ReportFilters{}, fmt.Errorf("%w: start %q", domain.ErrInvalidDateRange, input.Start)
		}
		end, err := time.Parse(dateLayout, input.End)
		if err != nil {
			return domain.ReportFilters{}, fmt.Errorf("%w: end %q", domain.ErrInvalidDateRange, input.End)
		}
		if end.Before(start) {
			return domain.ReportFilters{}, fmt.Errorf("%w: end before start", domain.ErrInvalidDateRange)
		}
		f.Start, f.End = start, end
	default:
		return domain.ReportFilters{}, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidDateRange, input.Period)
	}
	return f, nil
}

// filterDocuments keeps documents issued within [start, end]. Documents with
// an unreadable issue date never match a range.
func filterDocuments(docs []domain.Document, start, end time.Time, docType domain.DocumentType) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for i := range docs {
		if docType != domain.DocTypeAll && docs[i].DocType != docType {
			continue
		}
		issued, err := time.Parse(dateLayout, docs[i].Details.IssueDate)
		if err != nil || issued.Before(start) || issued.After(end) {
			continue
		}
		out = append(out, docs[i])
	}
	return out
}

func summarize(docs []domain.Document) *domain.SalesReport {
	report := &domain.SalesReport{
		Totals: domain.SalesTotals{
			Sales: decimal.Zero, Taxable: decimal.Zero, GST: decimal.Zero,
			CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero,
		},
		DocumentCounts: make(map[domain.DocumentType]int, len(domain.AllDocumentTypes)),
		TotalDocuments: len(docs),
		Monthly:        []domain.MonthlySales{},
		TopClients:     []domain.ClientSales{},
	}
	for _, t := range domain.AllDocumentTypes {
		report.DocumentCounts[t] = 0
	}

	months := map[string]*domain.MonthlySales{}
	clients := map[string]*domain.ClientSales{}

	for i := range docs {
		doc := &docs[i]
		t := doc.Totals

		report.Totals.Sales = report.Totals.Sales.Add(t.GrandTotal)
		report.Totals.Taxable = report.Totals.Taxable.Add(t.SubTotal)
		report.Totals.GST = report.Totals.GST.Add(t.TotalGST)
		report.Totals.CGST = report.Totals.CGST.Add(t.CGST)
		report.Totals.SGST = report.Totals.SGST.Add(t.SGST)
		report.Totals.IGST = report.Totals.IGST.Add(t.IGST)
		report.DocumentCounts[doc.DocType]++

		key := doc.Details.IssueDate[:7]
		m, ok := months[key]
		if !ok {
			m = &domain.MonthlySales{Month: key, Sales: decimal.Zero, GST: decimal.Zero}
			months[key] = m
		}
		m.Sales = m.Sales.Add(t.GrandTotal)
		m.GST = m.GST.Add(t.TotalGST)
		m.Count++

		name := doc.Client.Name
		if name == "" {
			name = unknownClient
		}
		c, ok := clients[name]
		if !ok {
			c = &domain.ClientSales{Name: name, Amount: decimal.Zero}
			clients[name] = c
		}
		c.Amount = c.Amount.Add(t.GrandTotal)
		c.Count++
	}

	for _, m := range months {
		report.Monthly = append(report.Monthly, *m)
	}
	sort.Slice(report.Monthly, func(i, j int) bool {
		return report.Monthly[i].Month < report.Monthly[j].Month
	})

	for _, c := range clients {
		report.TopClients = append(report.TopClients, *c)
	}
	sort.Slice(report.TopClients, func(i, j int) bool {
		a, b := report.TopClients[i], report.TopClients[j]
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp > 0
		}
		return a.Name < b.Name
	})
	if len(report.TopClients) > topClientLimit {
		report.TopClients = report.TopClients[:topClientLimit]
	}
	return report
}

func compare(report *domain.SalesReport, previous []domain.Document, start, end time.Time) *domain.PeriodComparison {
	prevSales := decimal.Zero
	for i := range previous {
		prevSales = prevSales.Add(previous[i].Totals.GrandTotal)
	}

	percent := decimal.Zero
	if prevSales.IsPositive() {
		percent = report.Totals.Sales.Sub(prevSales).Div(prevSales).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &domain.PeriodComparison{
		PreviousStart:      start,
		PreviousEnd:        end,
		PreviousSales:      prevSales,
		PreviousDocuments:  len(previous),
		SalesChangePercent: percent,
		DocumentChange:     report.TotalDocuments - len(previous),
	}
}

// daysBetween returns the whole days from start to end.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
