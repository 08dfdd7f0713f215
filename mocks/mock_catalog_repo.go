package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Get(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) (*domain.Catalog, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *MockCatalogRepo) Save(ctx context.Context, catalog *domain.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepo) Delete(ctx context.Context, userID uuid.UUID, kind domain.CatalogKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}
