package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/port"
)

const (
	settingsClients  = "clients"
	settingsProducts = "products"
)

// RestoreResult reports what a restore wrote.
type RestoreResult struct {
	DocumentsRestored int       `json:"documents_restored"`
	CatalogsRestored  int       `json:"catalogs_restored"`
	BackupVersion     string    `json:"backup_version"`
	BackupDate        time.Time `json:"backup_date"`
	OriginalSize      string    `json:"original_size"`
}

// BackupInfo describes the backup a user would get right now.
type BackupInfo struct {
	TotalDocuments int    `json:"total_documents"`
	EstimatedSize  string `json:"estimated_size"`
}

// ArchiveResult points at a backup stored in object storage.
type ArchiveResult struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// BackupService exports and restores everything a user owns.
type BackupService interface {
	Create(ctx context.Context, userID uuid.UUID) (*domain.Backup, error)
	Info(ctx context.Context, userID uuid.UUID) (*BackupInfo, error)
	Validate(backup *domain.Backup) error
	Restore(ctx context.Context, userID uuid.UUID, backup *domain.Backup) (*RestoreResult, error)
	Archive(ctx context.Context, userID uuid.UUID) (*ArchiveResult, error)
	// RestoreArchive restores a backup previously written by Archive.
	RestoreArchive(ctx context.Context, userID uuid.UUID, key string) (*RestoreResult, error)
}

type backupService struct {
	docRepo     port.DocumentRepository
	catalogRepo port.CatalogRepository
	storage     port.ObjectStorage
	s3Cfg       config.S3Config
	appVersion  string
	now         func() time.Time
}

// NewBackupService creates a new BackupService. storage may be nil, in which
// case Archive reports domain.ErrStorageUnavailable.
func NewBackupService(
	docRepo port.DocumentRepository,
	catalogRepo port.CatalogRepository,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	appVersion string,
) BackupService {
	return NewBackupServiceWithClock(docRepo, catalogRepo, storage, s3Cfg, appVersion, time.Now)
}

// NewBackupServiceWithClock is NewBackupService with an injected clock.
func NewBackupServiceWithClock(
	docRepo port.DocumentRepository,
	catalogRepo port.CatalogRepository,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	appVersion string,
	now func() time.Time,
) BackupService {
	if appVersion == "" {
		appVersion = domain.BackupVersion
	}
	return &backupService{
		docRepo:     docRepo,
		catalogRepo: catalogRepo,
		storage:     storage,
		s3Cfg:       s3Cfg,
		appVersion:  appVersion,
		now:         now,
	}
}

func (s *backupService) Create(ctx context.Context, userID uuid.UUID) (*domain.Backup, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	docs, err := s.docRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("backupService.Create: %w", err)
	}

	settings := map[string]interface{}{}
	for _, kind := range []domain.CatalogKind{domain.CatalogClients, domain.CatalogProducts} {
		c, err := s.catalogRepo.Get(ctx, userID, kind)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("backupService.Create: %w", err)
		}
		settings[settingsKey(kind)] = c
	}

	backup := &domain.Backup{
		Version:         domain.BackupVersion,
		Timestamp:       s.now().UTC(),
		Documents:       make([]domain.BackupDocument, 0, len(docs)),
		Settings:        settings,
		UserPreferences: defaultPreferences(),
		Metadata: domain.BackupMetadata{
			TotalDocuments: len(docs),
			BackupSize:     "0 MB",
			AppVersion:     s.appVersion,
		},
	}
	for i := range docs {
		backup.Documents = append(backup.Documents, domain.BackupDocument{Document: docs[i]})
	}

	size, err := encodedSize(backup)
	if err != nil {
		return nil, fmt.Errorf("backupService.Create: %w", err)
	}
	backup.Metadata.BackupSize = formatMB(size)
	return backup, nil
}

func (s *backupService) Info(ctx context.Context, userID uuid.UUID) (*BackupInfo, error) {
	backup, err := s.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BackupInfo{
		TotalDocuments: backup.Metadata.TotalDocuments,
		EstimatedSize:  backup.Metadata.BackupSize,
	}, nil
}

func (s *backupService) Validate(backup *domain.Backup) error {
	switch {
	case backup == nil:
		return domain.ErrInvalidBackup
	case strings.TrimSpace(backup.Version) == "":
		return fmt.Errorf("%w: missing version", domain.ErrInvalidBackup)
	case backup.Timestamp.IsZero():
		return fmt.Errorf("%w: missing timestamp", domain.ErrInvalidBackup)
	case backup.Documents == nil:
		return fmt.Errorf("%w: missing documents", domain.ErrInvalidBackup)
	}
	return nil
}

func (s *backupService) Restore(ctx context.Context, userID uuid.UUID, backup *domain.Backup) (*RestoreResult, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.Validate(backup); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(backup.Documents))
	for i := range backup.Documents {
		doc := backup.Documents[i].Document
		doc.ID = uuid.Nil
		doc.UserID = userID
		doc.Recompute()
		docs = append(docs, doc)
	}
	catalogs, err := catalogsFromSettings(userID, backup.Settings)
	if err != nil {
		return nil, err
	}

	removed, err := s.docRepo.ReplaceAll(ctx, userID, docs)
	if err != nil {
		return nil, fmt.Errorf("backupService.Restore: %w", err)
	}
	for _, c := range catalogs {
		if err := s.catalogRepo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("backupService.Restore: %w", err)
		}
	}

	log.Printf("backupService.Restore: user %s: removed %d, restored %d documents and %d catalogs",
		userID, removed, len(docs), len(catalogs))
	return &RestoreResult{
		DocumentsRestored: len(docs),
		CatalogsRestored:  len(catalogs),
		BackupVersion:     backup.Version,
		BackupDate:        backup.Timestamp,
		OriginalSize:      backup.Metadata.BackupSize,
	}, nil
}

func (s *backupService) Archive(ctx context.Context, userID uuid.UUID) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}
	backup, err := s.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("backupService.Archive: %w", err)
	}

	stamp := backup.Timestamp.Format("2006-01-02T15-04-05")
	key := archivePrefix(userID) + stamp + ".json"
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
		Size:        int64(len(data)),
		Filename:    fmt.Sprintf("invoice-app-backup-%s.json", stamp),
	})
	if err != nil {
		return nil, fmt.Errorf("backupService.Archive: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("backupService.Archive presign: %w", err)
	}
	return &ArchiveResult{Key: key, URL: url, ExpiresIn: s.s3Cfg.PresignExpiry}, nil
}

func (s *backupService) RestoreArchive(ctx context.Context, userID uuid.UUID, key string) (*RestoreResult, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if s.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}
	if !strings.HasPrefix(key, archivePrefix(userID)) || strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: archive %s belongs to another user", domain.ErrForbidden, key)
	}

	data, err := s.storage.Download(ctx, s.s3Cfg.Bucket, key)
	if err != nil {
		return nil, fmt.Errorf("backupService.RestoreArchive: %w", err)
	}
	var backup domain.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	return s.Restore(ctx, userID, &backup)
}

// archivePrefix is where Archive stores a user's backups.
func archivePrefix(userID uuid.UUID) string {
	return fmt.Sprintf("users/%s/backups/", userID)
}

// catalogsFromSettings reads the catalogs stored under the settings map. The
// values arrive as generic JSON after a decode, so each one is re-encoded
// into a domain.Catalog.
func catalogsFromSettings(userID uuid.UUID, settings map[string]interface{}) ([]*domain.Catalog, error) {
	var out []*domain.Catalog
	for _, kind := range []domain.CatalogKind{domain.CatalogClients, domain.CatalogProducts} {
		raw, ok := settings[settingsKey(kind)]
		if !ok || raw == nil {
			continue
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidBackup, kind, err)
		}
		var c domain.Catalog
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidBackup, kind, err)
		}
		c.UserID = userID
		c.Kind = kind
		out = append(out, &c)
	}
	return out, nil
}

func settingsKey(kind domain.CatalogKind) string {
	if kind == domain.CatalogProducts {
		return settingsProducts
	}
	return settingsClients
}

func defaultPreferences() map[string]interface{} {
	return map[string]interface{}{
		"theme":      "light",
		"language":   "en",
		"currency":   "INR",
		"dateFormat": "DD/MM/YYYY",
	}
}

func encodedSize(backup *domain.Backup) (int, error) {
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func formatMB(n int) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}
