package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"gstbill/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage. Upload
// also keeps the bytes it was given, keyed by object key, so tests can
// inspect archived backups and stored PDFs.
type MockObjectStorage struct {
	mock.Mock

	mu       sync.Mutex
	uploaded map[string][]byte
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if input.Body != nil {
		data, err := io.ReadAll(input.Body)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		if m.uploaded == nil {
			m.uploaded = make(map[string][]byte)
		}
		m.uploaded[input.Key] = data
		m.mu.Unlock()
		input.Body = bytes.NewReader(data)
	}

	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

// Uploaded returns the body last uploaded under key.
func (m *MockObjectStorage) Uploaded(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.uploaded[key]
	return data, ok
}

func (m *MockObjectStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *MockObjectStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
