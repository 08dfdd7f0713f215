package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/csvio"
	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/sheets"
	"gstbill/internal/xlsx"
)

const (
	defaultSuggestLimit = 5
	maxSuggestLimit     = 10
)

// CatalogService manages each user's client and product lists.
type CatalogService interface {
	GetClients(ctx context.Context, userID uuid.UUID) ([]domain.ClientRecord, error)
	GetProducts(ctx context.Context, userID uuid.UUID) ([]domain.ProductRecord, error)
	Info(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.CatalogInfo, error)
	SaveClients(ctx context.Context, userID uuid.UUID, clients []domain.ClientRecord) (*domain.CatalogInfo, error)
	SaveProducts(ctx context.Context, userID uuid.UUID, products []domain.ProductRecord) (*domain.CatalogInfo, error)
	Clear(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error
	ImportCSV(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, r io.Reader) (*domain.CatalogInfo, error)
	ImportXLSX(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, r io.Reader) (*domain.CatalogInfo, error)
	ImportGoogleSheet(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, sheetURL string) (*domain.CatalogInfo, error)
	ExportCSV(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, w io.Writer) (string, error)
	ExportXLSX(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, w io.Writer) (string, error)
	SuggestClients(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.ClientRecord, error)
	SuggestProducts(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.ProductRecord, error)
	FindClient(ctx context.Context, userID uuid.UUID, name string) (*domain.ClientRecord, error)
}

type catalogService struct {
	catalogRepo port.CatalogRepository
	fetcher     port.SheetFetcher
	now         func() time.Time
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(catalogRepo port.CatalogRepository, fetcher port.SheetFetcher) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		fetcher:     fetcher,
		now:         time.Now,
	}
}

func (s *catalogService) GetClients(ctx context.Context, userID uuid.UUID) ([]domain.ClientRecord, error) {
	c, err := s.load(ctx, userID, domain.CatalogClients)
	if err != nil {
		return nil, err
	}
	return c.Clients, nil
}

func (s *catalogService) GetProducts(ctx context.Context, userID uuid.UUID) ([]domain.ProductRecord, error) {
	c, err := s.load(ctx, userID, domain.CatalogProducts)
	if err != nil {
		return nil, err
	}
	return c.Products, nil
}

func (s *catalogService) Info(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.CatalogInfo, error) {
	c, err := s.load(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	return catalogInfo(c), nil
}

func (s *catalogService) SaveClients(ctx context.Context, userID uuid.UUID, clients []domain.ClientRecord) (*domain.CatalogInfo, error) {
	return s.save(ctx, &domain.Catalog{
		UserID: userID, Kind: domain.CatalogClients, Clients: clients, Source: domain.SourceManual,
	})
}

func (s *catalogService) SaveProducts(ctx context.Context, userID uuid.UUID, products []domain.ProductRecord) (*domain.CatalogInfo, error) {
	return s.save(ctx, &domain.Catalog{
		UserID: userID, Kind: domain.CatalogProducts, Products: products, Source: domain.SourceManual,
	})
}

func (s *catalogService) Clear(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error {
	if err := checkCatalog(userID, kind); err != nil {
		return err
	}
	err := s.catalogRepo.Delete(ctx, userID, kind)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("catalogService.Clear: %w", err)
	}
	return nil
}

func (s *catalogService) ImportCSV(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, r io.Reader) (*domain.CatalogInfo, error) {
	rows, err := csvio.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFileType, err)
	}
	return s.replace(ctx, userID, kind, rows, domain.SourceCSV, "")
}

func (s *catalogService) ImportXLSX(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, r io.Reader) (*domain.CatalogInfo, error) {
	rows, err := xlsx.ReadRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFileType, err)
	}
	return s.replace(ctx, userID, kind, rows, domain.SourceXLSX, "")
}

func (s *catalogService) ImportGoogleSheet(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, sheetURL string) (*domain.CatalogInfo, error) {
	if err := checkCatalog(userID, kind); err != nil {
		return nil, err
	}
	exportURL, err := sheets.ExportURL(sheetURL)
	if err != nil {
		return nil, err
	}
	body, err := s.fetcher.FetchCSV(ctx, exportURL)
	if err != nil {
		return nil, err
	}
	rows, err := csvio.ReadRows(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetFetchFailed, err)
	}
	log.Printf("catalogService.ImportGoogleSheet: user %s %s: %d rows from %s", userID, kind, len(rows), exportURL)
	return s.replace(ctx, userID, kind, rows, domain.SourceGoogleSheets, strings.TrimSpace(sheetURL))
}

func (s *catalogService) ExportCSV(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, w io.Writer) (string, error) {
	table, err := s.table(ctx, userID, kind)
	if err != nil {
		return "", err
	}
	if err := csvio.WriteTable(w, table); err != nil {
		return "", fmt.Errorf("catalogService.ExportCSV: %w", err)
	}
	return csvio.BuildFilename(string(kind), "csv", s.now()), nil
}

func (s *catalogService) ExportXLSX(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, w io.Writer) (string, error) {
	table, err := s.table(ctx, userID, kind)
	if err != nil {
		return "", err
	}
	sheet := "Clients"
	if kind == domain.CatalogProducts {
		sheet = "Products"
	}
	if err := xlsx.WriteTable(w, sheet, table); err != nil {
		return "", fmt.Errorf("catalogService.ExportXLSX: %w", err)
	}
	return csvio.BuildFilename(string(kind), "xlsx", s.now()), nil
}

func (s *catalogService) SuggestClients(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.ClientRecord, error) {
	if !suggestible(query) {
		return []domain.ClientRecord{}, nil
	}
	clients, err := s.GetClients(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	limit = suggestLimit(limit)
	out := make([]domain.ClientRecord, 0, limit)
	for _, c := range clients {
		if len(out) == limit {
			break
		}
		if containsFold(c.Name, q) || strings.Contains(c.Phone, query) ||
			containsFold(c.GSTIN, q) || containsFold(c.Email, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *catalogService) SuggestProducts(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.ProductRecord, error) {
	if !suggestible(query) {
		return []domain.ProductRecord{}, nil
	}
	products, err := s.GetProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	limit = suggestLimit(limit)
	out := make([]domain.ProductRecord, 0, limit)
	for _, p := range products {
		if len(out) == limit {
			break
		}
		if containsFold(p.Description, q) || strings.Contains(p.HSN, query) || containsFold(p.Category, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *catalogService) FindClient(ctx context.Context, userID uuid.UUID, name string) (*domain.ClientRecord, error) {
	clients, err := s.GetClients(ctx, userID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for i := range clients {
		if strings.EqualFold(clients[i].Name, name) {
			return &clients[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *catalogService) load(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.Catalog, error) {
	if err := checkCatalog(userID, kind); err != nil {
		return nil, err
	}
	c, err := s.catalogRepo.Get(ctx, userID, kind)
	if errors.Is(err, domain.ErrNotFound) {
		empty := &domain.Catalog{UserID: userID, Kind: kind}
		if kind == domain.CatalogProducts {
			empty.Products = []domain.ProductRecord{}
		} else {
			empty.Clients = []domain.ClientRecord{}
		}
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalogService.load: %w", err)
	}
	return c, nil
}

func (s *catalogService) replace(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind,
	rows []csvio.Row, source domain.CatalogSource, sheetURL string) (*domain.CatalogInfo, error) {
	c := &domain.Catalog{UserID: userID, Kind: kind, Source: source, SheetURL: sheetURL}
	switch kind {
	case domain.CatalogProducts:
		c.Products = csvio.Products(rows)
	default:
		c.Clients = csvio.Clients(rows)
	}
	return s.save(ctx, c)
}

func (s *catalogService) save(ctx context.Context, c *domain.Catalog) (*domain.CatalogInfo, error) {
	if err := checkCatalog(c.UserID, c.Kind); err != nil {
		return nil, err
	}
	c.LastUpdated = s.now().UTC()
	if err := s.catalogRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("catalogService.save: %w", err)
	}
	return catalogInfo(c), nil
}

func (s *catalogService) table(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) ([][]string, error) {
	c, err := s.load(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	if kind == domain.CatalogProducts {
		return csvio.ProductTable(c.Products), nil
	}
	return csvio.ClientTable(c.Clients), nil
}

func catalogInfo(c *domain.Catalog) *domain.CatalogInfo {
	info := &domain.CatalogInfo{
		Kind:     c.Kind,
		Source:   c.Source,
		SheetURL: c.SheetURL,
		Count:    c.Count(),
	}
	if !c.LastUpdated.IsZero() {
		t := c.LastUpdated
		info.LastUpdated = &t
	}
	return info
}

func checkCatalog(userID uuid.UUID, kind domain.CatalogKind) error {
	if userID == uuid.Nil {
		return domain.ErrUnauthenticated
	}
	if !domain.ValidCatalogKinds[kind] {
		return domain.ErrInvalidCatalogKind
	}
	return nil
}

func suggestible(query string) bool {
	return len([]rune(strings.TrimSpace(query))) > 1
}

func suggestLimit(limit int) int {
	if limit <= 0 {
		return defaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		return maxSuggestLimit
	}
	return limit
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
