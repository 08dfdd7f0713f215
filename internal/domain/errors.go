package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrUnauthenticated         = errors.New("not authenticated")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserInactive            = errors.New("user is inactive")
	ErrDuplicateEmail          = errors.New("email already exists")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrInvalidDocumentType     = errors.New("invalid document type")
	ErrDuplicateDocumentNumber = errors.New("document number already exists")
	ErrLookupTimeout           = errors.New("document lookup timed out")
	ErrInvalidCatalogKind      = errors.New("invalid catalog kind")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrInvalidSheetURL         = errors.New("invalid google sheets url")
	ErrSheetFetchFailed        = errors.New("google sheet could not be fetched")
	ErrInvalidBackup           = errors.New("invalid backup format")
	ErrInvalidDateRange        = errors.New("invalid date range")
	ErrEmailRecipientMissing   = errors.New("client has no email address")
	ErrRendererUnavailable     = errors.New("pdf renderer unavailable")
	ErrStorageUnavailable      = errors.New("object storage not configured")
	ErrUploadFailed            = errors.New("upload to storage failed")
)
