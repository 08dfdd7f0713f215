package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/docnumber"
	"gstbill/internal/domain"
)

// MockNumberingService is a mock implementation of service.NumberingService.
type MockNumberingService struct {
	mock.Mock
}

func (m *MockNumberingService) NextNumber(ctx context.Context, userID uuid.UUID, docType domain.DocumentType) (string, error) {
	args := m.Called(ctx, userID, docType)
	return args.String(0), args.Error(1)
}

func (m *MockNumberingService) RecentNumbers(ctx context.Context, userID uuid.UUID, docType domain.DocumentType, limit int) ([]string, error) {
	args := m.Called(ctx, userID, docType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockNumberingService) CheckDuplicate(ctx context.Context, userID uuid.UUID, number string, docType domain.DocumentType, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, number, docType, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNumberingService) Validate(number string) docnumber.Result {
	args := m.Called(number)
	return args.Get(0).(docnumber.Result)
}

func (m *MockNumberingService) Suggest(number string) string {
	args := m.Called(number)
	return args.String(0)
}
