package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/config"
	"gstbill/internal/csvio"
	"gstbill/internal/docnumber"
	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/port"
)

// Warning texts attached to a save that succeeded.
const (
	WarnDuplicateNumber = "document number already exists"
	WarnCompanyGSTIN    = "company GSTIN does not look valid"
	WarnClientGSTIN     = "client GSTIN does not look valid"
)

// DocumentInput carries the editable fields of a document.
type DocumentInput struct {
	DocType               string
	GSTMode               string
	Company               domain.CompanyInfo
	Client                domain.ClientInfo
	Shipping              domain.ClientInfo
	ShippingSameAsBilling bool
	Details               domain.DocumentDetails
	Bank                  domain.BankInfo
	Items                 []gst.LineItem
	TermsAndConditions    string
	UPIID                 string
	IsSimpleMode          bool
}

// CreateDocumentInput is the DTO for saving a new document.
type CreateDocumentInput struct {
	UserID uuid.UUID
	DocumentInput
}

// UpdateDocumentInput is the DTO for replacing a saved document's fields.
type UpdateDocumentInput struct {
	UserID     uuid.UUID
	DocumentID uuid.UUID
	DocumentInput
}

// SaveResult is a stored document plus any advisory warnings.
type SaveResult struct {
	Document *domain.Document `json:"document"`
	Warnings []string         `json:"warnings"`
}

// TotalsPreviewInput is what the totals engine needs for a live preview.
type TotalsPreviewInput struct {
	Items        []gst.LineItem
	CompanyGSTIN string
	ClientGSTIN  string
	IsSimpleMode bool
	GSTMode      string
}

// RenderedPDF is a rendered document. URL is set only when the PDF was also
// stored in object storage.
type RenderedPDF struct {
	Data      []byte
	Filename  string
	URL       string
	ExpiresIn int64
}

// DocumentService defines the document management contract.
type DocumentService interface {
	Create(ctx context.Context, input *CreateDocumentInput) (*SaveResult, error)
	GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	ListByType(ctx context.Context, userID uuid.UUID, docType string) ([]domain.Document, error)
	Update(ctx context.Context, input *UpdateDocumentInput) (*SaveResult, error)
	Delete(ctx context.Context, userID, docID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int, error)
	Import(ctx context.Context, userID uuid.UUID, docs []domain.Document) (int, error)
	PreviewTotals(input *TotalsPreviewInput) (*gst.Totals, error)
	ExportSummaryCSV(ctx context.Context, userID, docID uuid.UUID, w io.Writer) (string, error)
	RenderPDF(ctx context.Context, userID, docID uuid.UUID) (*RenderedPDF, error)
}

type documentService struct {
	docRepo   port.DocumentRepository
	numbering NumberingService
	renderer  port.DocumentRenderer
	storage   port.ObjectStorage
	defaults  config.DefaultsConfig
	numCfg    config.NumberingConfig
	pdfCfg    config.PDFConfig
	s3Cfg     config.S3Config
	now       func() time.Time
}

// NewDocumentService creates a new DocumentService implementation. renderer
// and storage may be nil.
func NewDocumentService(
	docRepo port.DocumentRepository,
	numbering NumberingService,
	renderer port.DocumentRenderer,
	storage port.ObjectStorage,
	cfg *config.Config,
) DocumentService {
	return NewDocumentServiceWithClock(docRepo, numbering, renderer, storage, cfg, time.Now)
}

// NewDocumentServiceWithClock is NewDocumentService with an injected clock.
func NewDocumentServiceWithClock(
	docRepo port.DocumentRepository,
	numbering NumberingService,
	renderer port.DocumentRenderer,
	storage port.ObjectStorage,
	cfg *config.Config,
	now func() time.Time,
) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		numbering: numbering,
		renderer:  renderer,
		storage:   storage,
		defaults:  cfg.Defaults,
		numCfg:    cfg.Numbering,
		pdfCfg:    cfg.PDF,
		s3Cfg:     cfg.S3,
		now:       now,
	}
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*SaveResult, error) {
	if input.UserID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	doc, err := s.build(&input.DocumentInput)
	if err != nil {
		return nil, err
	}
	doc.UserID = input.UserID

	if strings.TrimSpace(doc.Details.Number) == "" {
		next, err := s.numbering.NextNumber(ctx, input.UserID, doc.DocType)
		if err != nil {
			return nil, err
		}
		doc.Details.Number = next
	}

	warnings, err := s.checkNumber(ctx, doc, nil)
	if err != nil {
		return nil, err
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.Create: %w", err)
	}
	log.Printf("documentService.Create: user %s saved %s %s (%s)", doc.UserID, doc.DocType, doc.Details.Number, doc.ID)
	return &SaveResult{Document: doc, Warnings: append(warnings, gstinWarnings(doc)...)}, nil
}

func (s *documentService) GetByID(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.docRepo.GetByID(ctx, userID, docID)
}

func (s *documentService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	if userID == uuid.Nil {
		return nil, 0, domain.ErrUnauthenticated
	}
	return s.docRepo.List(ctx, userID, offset, limit)
}

func (s *documentService) ListByType(ctx context.Context, userID uuid.UUID, docType string) ([]domain.Document, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	t, err := domain.ParseDocumentType(docType)
	if err != nil {
		return nil, err
	}
	return s.docRepo.ListByType(ctx, userID, t)
}

func (s *documentService) Update(ctx context.Context, input *UpdateDocumentInput) (*SaveResult, error) {
	if input.UserID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	existing, err := s.docRepo.GetByID(ctx, input.UserID, input.DocumentID)
	if err != nil {
		return nil, err
	}

	doc, err := s.build(&input.DocumentInput)
	if err != nil {
		return nil, err
	}
	doc.ID = existing.ID
	doc.UserID = existing.UserID
	doc.CreatedAt = existing.CreatedAt
	if strings.TrimSpace(doc.Details.Number) == "" {
		doc.Details.Number = existing.Details.Number
	}

	warnings, err := s.checkNumber(ctx, doc, &doc.ID)
	if err != nil {
		return nil, err
	}
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.Update: %w", err)
	}
	return &SaveResult{Document: doc, Warnings: append(warnings, gstinWarnings(doc)...)}, nil
}

func (s *documentService) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrUnauthenticated
	}
	if err := s.docRepo.Delete(ctx, userID, docID); err != nil {
		return err
	}
	s.removeStoredPDFs(ctx, userID, docID)
	return nil
}

func (s *documentService) DeleteAll(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, domain.ErrUnauthenticated
	}
	var stored []uuid.UUID
	if s.storesPDFs() {
		docs, err := s.docRepo.ListAll(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("documentService.DeleteAll: %w", err)
		}
		for i := range docs {
			stored = append(stored, docs[i].ID)
		}
	}

	n, err := s.docRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("documentService.DeleteAll: %w", err)
	}
	s.removeStoredPDFs(ctx, userID, stored...)
	log.Printf("documentService.DeleteAll: user %s removed %d documents", userID, n)
	return n, nil
}

func (s *documentService) storesPDFs() bool {
	return s.pdfCfg.Store && s.storage != nil
}

// removeStoredPDFs drops the rendered copies of deleted documents. Failures
// are logged; the documents themselves are already gone.
func (s *documentService) removeStoredPDFs(ctx context.Context, userID uuid.UUID, docIDs ...uuid.UUID) {
	if !s.storesPDFs() {
		return
	}
	for _, id := range docIDs {
		key := pdfKey(userID, id)
		if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); err != nil {
			log.Printf("documentService: removing stored pdf %s failed: %v", key, err)
		}
	}
}

// pdfKey is the object key of a document's rendered PDF. Re-rendering
// overwrites the same object.
func pdfKey(userID, docID uuid.UUID) string {
	return fmt.Sprintf("users/%s/documents/%s.pdf", userID, docID)
}

func (s *documentService) Import(ctx context.Context, userID uuid.UUID, docs []domain.Document) (int, error) {
	if userID == uuid.Nil {
		return 0, domain.ErrUnauthenticated
	}
	if len(docs) == 0 {
		return 0, nil
	}
	for i := range docs {
		docs[i].ID = uuid.Nil
		docs[i].UserID = userID
		docs[i].Recompute()
	}
	if err := s.docRepo.CreateBatch(ctx, docs); err != nil {
		return 0, fmt.Errorf("documentService.Import: %w", err)
	}
	return len(docs), nil
}

func (s *documentService) PreviewTotals(input *TotalsPreviewInput) (*gst.Totals, error) {
	mode, err := gst.ParseMode(input.GSTMode)
	if err != nil {
		return nil, err
	}
	totals := gst.ComputeTotals(input.Items, input.CompanyGSTIN, input.ClientGSTIN, input.IsSimpleMode, mode)
	return &totals, nil
}

func (s *documentService) ExportSummaryCSV(ctx context.Context, userID, docID uuid.UUID, w io.Writer) (string, error) {
	doc, err := s.GetByID(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	if err := csvio.WriteTable(w, csvio.SummaryTable(doc)); err != nil {
		return "", fmt.Errorf("documentService.ExportSummaryCSV: %w", err)
	}
	return csvio.SummaryFilename(doc), nil
}

func (s *documentService) RenderPDF(ctx context.Context, userID, docID uuid.UUID) (*RenderedPDF, error) {
	if s.renderer == nil {
		return nil, domain.ErrRendererUnavailable
	}
	doc, err := s.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("documentService.RenderPDF: %w", err)
	}

	out := &RenderedPDF{Data: data, Filename: PDFFilename(doc)}
	if !s.storesPDFs() {
		return out, nil
	}

	key := pdfKey(userID, doc.ID)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		Filename:    out.Filename,
	})
	if err != nil {
		log.Printf("documentService.RenderPDF: storing %s failed: %v", key, err)
		return out, nil
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		log.Printf("documentService.RenderPDF: presigning %s failed: %v", key, err)
		return out, nil
	}
	out.URL = url
	out.ExpiresIn = s.s3Cfg.PresignExpiry
	return out, nil
}

// PDFFilename returns {type}_{number}.pdf, e.g. purchase_order_3_2024.pdf.
func PDFFilename(doc *domain.Document) string {
	return fmt.Sprintf("%s_%s.pdf",
		strings.ToLower(csvio.SanitizeFilename(string(doc.DocType))),
		csvio.SanitizeFilename(doc.Details.Number))
}

// build validates the input and fills every defaulted field. The number is
// left empty when none was given.
func (s *documentService) build(in *DocumentInput) (*domain.Document, error) {
	docType, err := domain.ParseDocumentType(in.DocType)
	if err != nil {
		return nil, err
	}
	mode, err := gst.ParseMode(in.GSTMode)
	if err != nil {
		return nil, err
	}
	items := gst.Resequence(in.Items)
	for i := range items {
		if items[i].UOM == "" {
			items[i].UOM = gst.DefaultUOM
		}
	}
	if err := gst.ValidateItems(items, in.IsSimpleMode); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		DocType:               docType,
		Company:               in.Company,
		Client:                in.Client,
		Shipping:              in.Shipping,
		ShippingSameAsBilling: in.ShippingSameAsBilling,
		Details:               in.Details,
		Bank:                  in.Bank,
		Items:                 items,
		TermsAndConditions:    in.TermsAndConditions,
		UPIID:                 in.UPIID,
		IsSimpleMode:          in.IsSimpleMode,
		GSTMode:               mode,
	}
	doc.Details.Number = strings.TrimSpace(doc.Details.Number)
	if doc.ShippingSameAsBilling {
		doc.Shipping = doc.Client
	}
	s.applyDefaults(doc)
	doc.Recompute()
	return doc, nil
}

func (s *documentService) applyDefaults(doc *domain.Document) {
	issued, err := time.Parse(dateLayout, doc.Details.IssueDate)
	if err != nil {
		now := s.now()
		issued = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if doc.Details.IssueDate == "" {
			doc.Details.IssueDate = issued.Format(dateLayout)
		}
	}
	if doc.Details.ValidUntil == "" {
		doc.Details.ValidUntil = issued.AddDate(0, 0, s.defaults.ValidityDays).Format(dateLayout)
	}
	if doc.Details.DeliveryDate == "" {
		doc.Details.DeliveryDate = issued.AddDate(0, 0, s.defaults.DeliveryDays).Format(dateLayout)
	}
	if doc.Details.PlaceOfSupply == "" {
		doc.Details.PlaceOfSupply = s.defaults.PlaceOfSupply
	}
	if doc.TermsAndConditions == "" {
		doc.TermsAndConditions = s.defaults.TermsAndConditions
	}
	if doc.UPIID == "" {
		doc.UPIID = s.defaults.UPIID
	}
}

// checkNumber runs the duplicate lookup. Duplicates are reported as a
// warning unless numbering.enforce_unique is set.
func (s *documentService) checkNumber(ctx context.Context, doc *domain.Document, excludeID *uuid.UUID) ([]string, error) {
	warnings := []string{}
	if res := docnumber.Validate(doc.Details.Number, s.now()); !res.Valid {
		warnings = append(warnings, res.Error)
	}

	dup, err := s.numbering.CheckDuplicate(ctx, doc.UserID, doc.Details.Number, doc.DocType, excludeID)
	if err != nil {
		return nil, err
	}
	if dup {
		if s.numCfg.EnforceUnique {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateDocumentNumber, doc.Details.Number)
		}
		warnings = append(warnings, WarnDuplicateNumber)
	}
	return warnings, nil
}

func gstinWarnings(doc *domain.Document) []string {
	var out []string
	if gst.ValidateGSTIN(strings.ToUpper(doc.Company.GSTIN)) != nil {
		out = append(out, WarnCompanyGSTIN)
	}
	if gst.ValidateGSTIN(strings.ToUpper(doc.Client.GSTIN)) != nil {
		out = append(out, WarnClientGSTIN)
	}
	return out
}
