package port

import "context"

// SheetFetcher downloads the CSV export of a published spreadsheet.
type SheetFetcher interface {
	FetchCSV(ctx context.Context, exportURL string) ([]byte, error)
}
