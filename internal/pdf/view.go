package pdf

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/money"
)

var titles = map[domain.DocumentType]string{
	domain.DocTypeInvoice:       "TAX INVOICE",
	domain.DocTypeQuotation:     "QUOTATION",
	domain.DocTypePurchaseOrder: "PURCHASE ORDER",
}

type itemRow struct {
	SNo         int
	Description string
	HSNSAC      string
	Quantity    string
	UOM         string
	Rate        string
	Taxable     string
	GSTRate     string
	Tax         string
	Amount      string
}

type documentView struct {
	Title         string
	Doc           *domain.Document
	Simple        bool
	Items         []itemRow
	SubTotal      string
	CGST          string
	SGST          string
	IGST          string
	TotalGST      string
	GrandTotal    string
	AmountInWords string
	InterState    bool
	ShowValidity  bool
	ShowDelivery  bool
	ShowPayment   bool
	UPILink       string
	UPIQRCodeURL  string
	Terms         []string
}

func newDocumentView(doc *domain.Document) documentView {
	title := titles[doc.DocType]
	if title == "" {
		title = strings.ToUpper(string(doc.DocType))
	}

	rows := make([]itemRow, 0, len(doc.Items))
	for _, item := range doc.Items {
		taxable, tax := gst.ItemAmounts(item, doc.IsSimpleMode)
		rows = append(rows, itemRow{
			SNo:         item.SNo,
			Description: item.Description,
			HSNSAC:      item.HSNSAC,
			Quantity:    item.Quantity.String(),
			UOM:         item.UOM,
			Rate:        money.FormatINR(item.UnitPrice),
			Taxable:     money.FormatINR(taxable),
			GSTRate:     item.GSTRate.String() + "%",
			Tax:         money.FormatINR(tax),
			Amount:      money.FormatINR(taxable.Add(tax)),
		})
	}

	t := doc.Totals
	v := documentView{
		Title:         title,
		Doc:           doc,
		Simple:        doc.IsSimpleMode,
		Items:         rows,
		SubTotal:      money.FormatINR(t.SubTotal),
		CGST:          money.FormatINR(t.CGST),
		SGST:          money.FormatINR(t.SGST),
		IGST:          money.FormatINR(t.IGST),
		TotalGST:      money.FormatINR(t.TotalGST),
		GrandTotal:    money.FormatINR(t.GrandTotal),
		AmountInWords: money.AmountInWords(t.GrandTotal),
		InterState:    t.IsInterState,
		ShowValidity:  doc.DocType == domain.DocTypeQuotation && doc.Details.ValidUntil != "",
		ShowDelivery:  doc.DocType == domain.DocTypePurchaseOrder && doc.Details.DeliveryDate != "",
		ShowPayment:   doc.DocType != domain.DocTypePurchaseOrder,
		Terms:         splitLines(doc.TermsAndConditions),
	}
	if v.ShowPayment && doc.UPIID != "" {
		v.UPILink = upiLink(doc.UPIID, doc.Company.Name, t.GrandTotal)
		v.UPIQRCodeURL = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&format=png&data=" +
			url.QueryEscape(v.UPILink)
	}
	return v
}

func upiLink(upiID, payee string, amount decimal.Decimal) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR",
		upiID, url.QueryEscape(payee), money.Format(amount))
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type monthRow struct {
	Month string
	Sales string
	GST   string
	Count int
}

type clientRow struct {
	Rank   int
	Name   string
	Amount string
	Count  int
}

type typeCount struct {
	Type  string
	Count int
}

type reportView struct {
	Report      *domain.SalesReport
	From        string
	To          string
	DocType     string
	Sales       string
	Taxable     string
	GST         string
	CGST        string
	SGST        string
	IGST        string
	Counts      []typeCount
	Months      []monthRow
	Clients     []clientRow
	HasCompare  bool
	PrevSales   string
	ChangePct   string
	DocChange   int
	GeneratedAt string
}

func newReportView(r *domain.SalesReport) reportView {
	v := reportView{
		Report:      r,
		From:        r.Filters.Start.Format("02 Jan 2006"),
		To:          r.Filters.End.Format("02 Jan 2006"),
		DocType:     string(r.Filters.DocType),
		Sales:       money.FormatINR(r.Totals.Sales),
		Taxable:     money.FormatINR(r.Totals.Taxable),
		GST:         money.FormatINR(r.Totals.GST),
		CGST:        money.FormatINR(r.Totals.CGST),
		SGST:        money.FormatINR(r.Totals.SGST),
		IGST:        money.FormatINR(r.Totals.IGST),
		GeneratedAt: r.GeneratedAt.Format("02 Jan 2006 15:04"),
	}
	for _, dt := range domain.AllDocumentTypes {
		v.Counts = append(v.Counts, typeCount{Type: string(dt), Count: r.DocumentCounts[dt]})
	}
	for _, m := range r.Monthly {
		v.Months = append(v.Months, monthRow{Month: m.Month, Sales: money.FormatINR(m.Sales), GST: money.FormatINR(m.GST), Count: m.Count})
	}
	for i, c := range r.TopClients {
		v.Clients = append(v.Clients, clientRow{Rank: i + 1, Name: c.Name, Amount: money.FormatINR(c.Amount), Count: c.Count})
	}
	if c := r.Comparison; c != nil {
		v.HasCompare = true
		v.PrevSales = money.FormatINR(c.PreviousSales)
		v.ChangePct = c.SalesChangePercent.StringFixed(1) + "%"
		v.DocChange = c.DocumentChange
	}
	return v
}
