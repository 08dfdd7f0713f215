package port

import (
	"context"

	"gstbill/internal/domain"
)

// DocumentRenderer turns documents and reports into printable PDFs.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, doc *domain.Document) ([]byte, error)
	RenderReport(ctx context.Context, report *domain.SalesReport) ([]byte, error)
}
