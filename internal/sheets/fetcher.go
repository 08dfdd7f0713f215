package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const maxSheetBytes = 5 << 20

// Fetcher downloads published sheets over HTTPS.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (f *Fetcher) FetchCSV(ctx context.Context, exportURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating sheet request: %w", err)
	}
	req.Header.Set("Accept", "text/csv,text/plain,*/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: sheet not found, publish it to the web as CSV", domain.ErrSheetFetchFailed)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: access denied, make the sheet publicly accessible", domain.ErrSheetFetchFailed)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrSheetFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrSheetFetchFailed, err)
	}
	if len(body) > maxSheetBytes {
		return nil, fmt.Errorf("%w: sheet larger than %d bytes", domain.ErrSheetFetchFailed, maxSheetBytes)
	}
	return body, nil
}

// Compile-time check.
var _ port.SheetFetcher = (*Fetcher)(nil)
