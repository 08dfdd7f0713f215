package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetClients(ctx context.Context, userID uuid.UUID) ([]domain.ClientRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientRecord), args.Error(1)
}

func (m *MockCatalogService) GetProducts(ctx context.Context, userID uuid.UUID) ([]domain.ProductRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductRecord), args.Error(1)
}

func (m *MockCatalogService) Info(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.CatalogInfo, error) {
	args := m.Called(ctx, userID, kind)
	return catalogInfo(args)
}

func (m *MockCatalogService) SaveClients(ctx context.Context, userID uuid.UUID, clients []domain.ClientRecord) (*domain.CatalogInfo, error) {
	args := m.Called(ctx, userID, clients)
	return catalogInfo(args)
}

func (m *MockCatalogService) SaveProducts(ctx context.Context, userID uuid.UUID, products []domain.ProductRecord) (*domain.CatalogInfo, error) {
	args := m.Called(ctx, userID, products)
	return catalogInfo(args)
}

func (m *MockCatalogService) Clear(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockCatalogService) ImportCSV(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, r io.Reader) (*domain.CatalogInfo, error) {
	args := m.Called(ctx, userID, kind, r)
	return catalogInfo(args)
}

func (m *MockCatalogService) ImportXLSX(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, r io.Reader) (*domain.CatalogInfo, error) {
	args := m.Called(ctx, userID, kind, r)
	return catalogInfo(args)
}

func (m *MockCatalogService) ImportGoogleSheet(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, sheetURL string) (*domain.CatalogInfo, error) {
	args := m.Called(ctx, userID, kind, sheetURL)
	return catalogInfo(args)
}

func (m *MockCatalogService) ExportCSV(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, w io.Writer) (string, error) {
	args := m.Called(ctx, userID, kind, w)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogService) ExportXLSX(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind, w io.Writer) (string, error) {
	args := m.Called(ctx, userID, kind, w)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogService) SuggestClients(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.ClientRecord, error) {
	args := m.Called(ctx, userID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientRecord), args.Error(1)
}

func (m *MockCatalogService) SuggestProducts(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.ProductRecord, error) {
	args := m.Called(ctx, userID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductRecord), args.Error(1)
}

func (m *MockCatalogService) FindClient(ctx context.Context, userID uuid.UUID, name string) (*domain.ClientRecord, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientRecord), args.Error(1)
}

func catalogInfo(args mock.Arguments) (*domain.CatalogInfo, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogInfo), args.Error(1)
}
