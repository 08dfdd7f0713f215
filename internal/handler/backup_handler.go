package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

const maxBackupBytes = 50 << 20

// BackupHandler handles whole-account export and restore.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Download handles GET /api/v1/backup
// @Summary Download a backup
// @Tags backup
// @Produce application/json
// @Success 200 {object} domain.Backup
// @Security BearerAuth
// @Router /backup [get]
func (h *BackupHandler) Download(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	backup, err := h.backupService.Create(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		HandleError(c, fmt.Errorf("encoding backup: %w", err))
		return
	}

	filename := fmt.Sprintf("invoice-app-backup-%s.json", backup.Timestamp.Format("2006-01-02"))
	RespondAttachment(c, "application/json", filename, data)
}

// Info handles GET /api/v1/backup/info
// @Summary Backup size estimate
// @Tags backup
// @Produce json
// @Success 200 {object} Response{data=service.BackupInfo}
// @Security BearerAuth
// @Router /backup/info [get]
func (h *BackupHandler) Info(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	info, err := h.backupService.Info(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// Restore handles POST /api/v1/backup/restore
// @Summary Restore a backup
// @Description Accepts the backup as a JSON body or as a multipart "file" field. Existing documents and catalogs are replaced.
// @Tags backup
// @Accept json
// @Produce json
// @Param request body domain.Backup true "Backup file"
// @Success 200 {object} Response{data=service.RestoreResult}
// @Failure 400 {object} ErrorResponseBody "Invalid backup format"
// @Security BearerAuth
// @Router /backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBackupBytes)
	var src io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
			return
		}
		defer func() { _ = file.Close() }()
		src = file
	}

	var backup domain.Backup
	if err := json.NewDecoder(src).Decode(&backup); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err))
		return
	}

	result, err := h.backupService.Restore(c.Request.Context(), userID, &backup)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Archive handles POST /api/v1/backup/archive
// @Summary Store a backup in object storage
// @Tags backup
// @Produce json
// @Success 201 {object} Response{data=service.ArchiveResult}
// @Failure 503 {object} ErrorResponseBody "Object storage not configured"
// @Security BearerAuth
// @Router /backup/archive [post]
func (h *BackupHandler) Archive(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	result, err := h.backupService.Archive(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// RestoreArchive handles POST /api/v1/backup/archive/restore
// @Summary Restore an archived backup
// @Description Restores a backup stored by POST /backup/archive. The key must be one of the caller's archives.
// @Tags backup
// @Accept json
// @Produce json
// @Param request body RestoreArchiveRequest true "Archive key"
// @Success 200 {object} Response{data=service.RestoreResult}
// @Failure 400 {object} ErrorResponseBody "Invalid backup format"
// @Failure 403 {object} ErrorResponseBody "Archive belongs to another user"
// @Failure 503 {object} ErrorResponseBody "Object storage not configured"
// @Security BearerAuth
// @Router /backup/archive/restore [post]
func (h *BackupHandler) RestoreArchive(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req RestoreArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "key is required")
		return
	}

	result, err := h.backupService.RestoreArchive(c.Request.Context(), userID, req.Key)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
