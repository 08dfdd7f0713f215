package csvio

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gstbill/internal/domain"
	"gstbill/internal/money"
)

// SummaryColumns is the header of the one-row client summary export.
var SummaryColumns = []string{
	"Client Name",
	"Client Address",
	"Client Phone",
	"Client GSTIN",
	"Document Type",
	"Document Number",
	"Issue Date",
	"Valid Until",
	"Grand Total",
}

// SummaryTable returns the header and the single data row for doc. Only
// quotations carry a validity date; other types print N/A.
func SummaryTable(doc *domain.Document) [][]string {
	validUntil := "N/A"
	if doc.DocType == domain.DocTypeQuotation && doc.Details.ValidUntil != "" {
		validUntil = doc.Details.ValidUntil
	}
	return [][]string{
		SummaryColumns,
		{
			doc.Client.Name,
			doc.Client.Address,
			doc.Client.Phone,
			doc.Client.GSTIN,
			string(doc.DocType),
			doc.Details.Number,
			doc.Details.IssueDate,
			validUntil,
			money.Format(doc.Totals.GrandTotal),
		},
	}
}

// SummaryFilename returns client_data_{type}_{number}.csv with both parts
// made safe for Content-Disposition.
func SummaryFilename(doc *domain.Document) string {
	return fmt.Sprintf("client_data_%s_%s.csv",
		SanitizeFilename(string(doc.DocType)), SanitizeFilename(doc.Details.Number))
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_prefix}_{YYYY-MM-DD}.{ext}.
func BuildFilename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prefix), now.Format("2006-01-02"), ext)
}
