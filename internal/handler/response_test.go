package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{fmt.Errorf("numberingService.NextNumber: %w", domain.ErrLookupTimeout), http.StatusGatewayTimeout, "LOOKUP_TIMEOUT"},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
		{domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{domain.ErrInvalidDocumentType, http.StatusBadRequest, "INVALID_DOCUMENT_TYPE"},
		{domain.ErrDuplicateDocumentNumber, http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER"},
		{&gst.ValidationError{Fields: []gst.FieldError{{Field: "items[0].gst_rate", Message: "must not be negative"}}}, http.StatusBadRequest, "INVALID_LINE_ITEM"},
		{gst.ErrInvalidMode, http.StatusBadRequest, "INVALID_GST_MODE"},
		{gst.ErrInvalidGSTIN, http.StatusBadRequest, "INVALID_GSTIN"},
		{domain.ErrInvalidCatalogKind, http.StatusBadRequest, "INVALID_CATALOG_KIND"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrInvalidSheetURL, http.StatusBadRequest, "INVALID_SHEET_URL"},
		{domain.ErrSheetFetchFailed, http.StatusBadGateway, "SHEET_FETCH_FAILED"},
		{domain.ErrInvalidBackup, http.StatusBadRequest, "INVALID_BACKUP"},
		{domain.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{domain.ErrEmailRecipientMissing, http.StatusUnprocessableEntity, "EMAIL_RECIPIENT_MISSING"},
		{domain.ErrRendererUnavailable, http.StatusServiceUnavailable, "RENDERER_UNAVAILABLE"},
		{domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_ValidationMessageListsFields(t *testing.T) {
	err := &gst.ValidationError{Fields: []gst.FieldError{{Field: "items[1].quantity", Message: "must not be negative"}}}
	_, _, msg := handler.MapDomainError(err)
	assert.Contains(t, msg, "items[1].quantity")
}

func TestHandleError_InternalMessageIsGeneric(t *testing.T) {
	c, w := newContext(t, http.MethodGet, "/", nil)
	handler.HandleError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}
