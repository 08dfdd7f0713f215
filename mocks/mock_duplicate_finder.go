package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// MockDuplicateFinder is a mock implementation of port.DuplicateNumberFinder.
type MockDuplicateFinder struct {
	mock.Mock
}

func (m *MockDuplicateFinder) FindDuplicates(ctx context.Context, userID, excludeDocID uuid.UUID,
	docType domain.DocumentType, number string) ([]port.DuplicateMatch, error) {
	args := m.Called(ctx, userID, excludeDocID, docType, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.DuplicateMatch), args.Error(1)
}
