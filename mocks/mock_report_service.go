package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Sales(ctx context.Context, userID uuid.UUID, input service.ReportInput) (*domain.SalesReport, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesReport), args.Error(1)
}

func (m *MockReportService) ExportXLSX(ctx context.Context, userID uuid.UUID, input service.ReportInput, w io.Writer) (string, error) {
	args := m.Called(ctx, userID, input, w)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) ExportPDF(ctx context.Context, userID uuid.UUID, input service.ReportInput) ([]byte, string, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// MockBackupService is a mock implementation of service.BackupService.
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Create(ctx context.Context, userID uuid.UUID) (*domain.Backup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Backup), args.Error(1)
}

func (m *MockBackupService) Info(ctx context.Context, userID uuid.UUID) (*service.BackupInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BackupInfo), args.Error(1)
}

func (m *MockBackupService) Validate(backup *domain.Backup) error {
	args := m.Called(backup)
	return args.Error(0)
}

func (m *MockBackupService) Restore(ctx context.Context, userID uuid.UUID, backup *domain.Backup) (*service.RestoreResult, error) {
	args := m.Called(ctx, userID, backup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RestoreResult), args.Error(1)
}

func (m *MockBackupService) Archive(ctx context.Context, userID uuid.UUID) (*service.ArchiveResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}

func (m *MockBackupService) RestoreArchive(ctx context.Context, userID uuid.UUID, key string) (*service.RestoreResult, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RestoreResult), args.Error(1)
}

// MockEmailService is a mock implementation of service.EmailService.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Compose(ctx context.Context, userID, docID uuid.UUID) (*service.FollowUpEmail, error) {
	args := m.Called(ctx, userID, docID)
	return followUp(args)
}

func (m *MockEmailService) Draft(ctx context.Context, userID, docID uuid.UUID, tone string) (*service.FollowUpEmail, error) {
	args := m.Called(ctx, userID, docID, tone)
	return followUp(args)
}

func (m *MockEmailService) Send(ctx context.Context, userID, docID uuid.UUID, input service.SendEmailInput) (*service.FollowUpEmail, error) {
	args := m.Called(ctx, userID, docID, input)
	return followUp(args)
}

func followUp(args mock.Arguments) (*service.FollowUpEmail, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FollowUpEmail), args.Error(1)
}
