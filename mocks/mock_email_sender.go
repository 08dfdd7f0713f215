package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg port.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockEmailDrafter is a mock implementation of port.EmailDrafter.
type MockEmailDrafter struct {
	mock.Mock
}

func (m *MockEmailDrafter) DraftFollowUp(ctx context.Context, input port.DraftInput) (*port.EmailDraft, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EmailDraft), args.Error(1)
}
