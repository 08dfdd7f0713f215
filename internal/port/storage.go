package port

import (
	"context"
	"io"
)

// UploadInput describes one object to store, such as a rendered PDF or a
// backup archive.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	// Filename, when set, is sent as an attachment Content-Disposition so a
	// presigned download keeps a readable name.
	Filename string
}

// UploadOutput is what the store reports about a written object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage keeps rendered PDFs and backup archives under per-user keys
// (users/{id}/documents/..., users/{id}/backups/...).
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	// Download reads an archived backup back for restore.
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	// Delete removes the stored PDF of a deleted document.
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
