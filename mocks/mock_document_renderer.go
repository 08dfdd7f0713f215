package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderDocument(ctx context.Context, doc *domain.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) RenderReport(ctx context.Context, report *domain.SalesReport) ([]byte, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSheetFetcher is a mock implementation of port.SheetFetcher.
type MockSheetFetcher struct {
	mock.Mock
}

func (m *MockSheetFetcher) FetchCSV(ctx context.Context, exportURL string) ([]byte, error) {
	args := m.Called(ctx, exportURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
