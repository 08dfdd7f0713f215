// Package pdf renders documents and reports to A4 PDFs with headless Chrome.
package pdf

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/port"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ContentType is the MIME type of rendered files.
const ContentType = "application/pdf"

// Renderer prints HTML through a Chrome instance started per call.
type Renderer struct {
	execPath string
	timeout  time.Duration
}

// NewRenderer creates a Renderer. An empty ExecPath lets chromedp find Chrome.
func NewRenderer(cfg config.PDFConfig) *Renderer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Renderer{execPath: cfg.ExecPath, timeout: timeout}
}

func (r *Renderer) RenderDocument(ctx context.Context, doc *domain.Document) ([]byte, error) {
	html, err := DocumentHTML(doc)
	if err != nil {
		return nil, err
	}
	return r.print(ctx, html)
}

func (r *Renderer) RenderReport(ctx context.Context, report *domain.SalesReport) ([]byte, error) {
	html, err := ReportHTML(report)
	if err != nil {
		return nil, err
	}
	return r.print(ctx, html)
}

// DocumentHTML builds the printable page for doc.
func DocumentHTML(doc *domain.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "document.html", newDocumentView(doc)); err != nil {
		return nil, fmt.Errorf("executing document template: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportHTML builds the printable page for a sales report.
func ReportHTML(report *domain.SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "report.html", newReportView(report)); err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) print(ctx context.Context, html []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "gstbill-*.html")
	if err != nil {
		return nil, fmt.Errorf("creating temp html: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("writing temp html: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp html: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRendererUnavailable, err)
	}
	return pdfBuf, nil
}

// Compile-time check.
var _ port.DocumentRenderer = (*Renderer)(nil)
