package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newBackupHandler() (*handler.BackupHandler, *mocks.MockBackupService) {
	mockSvc := new(mocks.MockBackupService)
	return handler.NewBackupHandler(mockSvc), mockSvc
}

func TestBackupHandler_Download(t *testing.T) {
	h, mockSvc := newBackupHandler()
	userID := uuid.New()
	mockSvc.On("Create", mock.Anything, userID).Return(&domain.Backup{
		Version:   domain.BackupVersion,
		Timestamp: time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC),
	}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/backup", nil)
	setAuthContext(c, userID)

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="invoice-app-backup-2024-06-15.json"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), `"version": "1.0.0"`)
}

func TestBackupHandler_Info(t *testing.T) {
	h, mockSvc := newBackupHandler()
	mockSvc.On("Info", mock.Anything, mock.Anything).Return(&service.BackupInfo{TotalDocuments: 3, EstimatedSize: "0.01 MB"}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/backup/info", nil)
	setAuthContext(c, uuid.New())

	h.Info(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackupHandler_Restore_JSONBody(t *testing.T) {
	h, mockSvc := newBackupHandler()
	mockSvc.On("Restore", mock.Anything, mock.Anything, mock.MatchedBy(func(b *domain.Backup) bool {
		return b.Version == "1.0.0" && len(b.Documents) == 1
	})).Return(&service.RestoreResult{DocumentsRestored: 1}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/backup/restore", []byte(`{
		"version": "1.0.0",
		"timestamp": "2024-06-15T09:30:00Z",
		"documents": [{"id": "old", "doc_type": "Invoice"}]
	}`))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New())

	h.Restore(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestBackupHandler_Restore_Multipart(t *testing.T) {
	h, mockSvc := newBackupHandler()
	mockSvc.On("Restore", mock.Anything, mock.Anything, mock.Anything).Return(&service.RestoreResult{}, nil)

	body, contentType := multipartFile(t, "backup.json", `{"version":"1.0.0","documents":[]}`)
	c, w := newContext(t, http.MethodPost, "/api/v1/backup/restore", body.Bytes())
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, uuid.New())

	h.Restore(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackupHandler_Restore_Malformed(t *testing.T) {
	h, mockSvc := newBackupHandler()

	c, w := newContext(t, http.MethodPost, "/api/v1/backup/restore", []byte(`not json`))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New())

	h.Restore(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_BACKUP", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything, mock.Anything)
}

func TestBackupHandler_Archive(t *testing.T) {
	h, mockSvc := newBackupHandler()
	mockSvc.On("Archive", mock.Anything, mock.Anything).Return(nil, domain.ErrStorageUnavailable).Once()
	mockSvc.On("Archive", mock.Anything, mock.Anything).Return(&service.ArchiveResult{Key: "k", URL: "u", ExpiresIn: 900}, nil).Once()

	c, w := newContext(t, http.MethodPost, "/api/v1/backup/archive", nil)
	setAuthContext(c, uuid.New())
	h.Archive(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	c, w = newContext(t, http.MethodPost, "/api/v1/backup/archive", nil)
	setAuthContext(c, uuid.New())
	h.Archive(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBackupHandler_RestoreArchive(t *testing.T) {
	h, mockSvc := newBackupHandler()
	userID := uuid.New()
	key := "users/" + userID.String() + "/backups/2024-06-01T09-30-00.json"
	mockSvc.On("RestoreArchive", mock.Anything, userID, key).Return(&service.RestoreResult{DocumentsRestored: 2}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/backup/archive/restore", map[string]string{"key": key})
	setAuthContext(c, userID)
	h.RestoreArchive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestBackupHandler_RestoreArchive_Errors(t *testing.T) {
	h, mockSvc := newBackupHandler()
	mockSvc.On("RestoreArchive", mock.Anything, mock.Anything, "users/other/backups/x.json").Return(nil, domain.ErrForbidden)

	c, w := newContext(t, http.MethodPost, "/api/v1/backup/archive/restore", map[string]string{})
	setAuthContext(c, uuid.New())
	h.RestoreArchive(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newContext(t, http.MethodPost, "/api/v1/backup/archive/restore", map[string]string{"key": "users/other/backups/x.json"})
	setAuthContext(c, uuid.New())
	h.RestoreArchive(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthHandler(t *testing.T) {
	var pingErr error
	h := handler.NewHealthHandler(handler.PingFunc(func(context.Context) error { return pingErr }))

	c, w := newContext(t, http.MethodGet, "/healthz", nil)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(t, http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	pingErr = errors.New("connection refused")
	c, w = newContext(t, http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
