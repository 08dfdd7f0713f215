package handler_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func newDocumentHandler() (*handler.DocumentHandler, *mocks.MockDocumentService) {
	mockSvc := new(mocks.MockDocumentService)
	return handler.NewDocumentHandler(mockSvc), mockSvc
}

func TestDocumentHandler_Create_Success(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	userID := uuid.New()

	saved := &service.SaveResult{
		Document: &domain.Document{ID: uuid.New(), UserID: userID, DocType: domain.DocTypeInvoice},
		Warnings: []string{service.WarnDuplicateNumber},
	}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in *service.CreateDocumentInput) bool {
		if in.UserID != userID || in.DocType != "Invoice" || len(in.Items) != 1 {
			return false
		}
		item := in.Items[0]
		return item.Quantity.Equal(decimal.NewFromInt(2)) &&
			item.UnitPrice.Equal(decimal.NewFromInt(590)) &&
			item.GSTRate.IsZero() &&
			item.TaxableValue == nil
	})).Return(saved, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents", map[string]interface{}{
		"doc_type": "Invoice",
		"details":  map[string]string{"number": "#1/2024"},
		"items": []map[string]interface{}{
			{"s_no": 1, "description": "Rods", "quantity": "2", "unit_price": 590, "gst_rate": "abc"},
		},
	})
	setAuthContext(c, userID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{service.WarnDuplicateNumber}, data["warnings"])
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Create_NoAuth(t *testing.T) {
	h, _ := newDocumentHandler()
	c, w := newContext(t, http.MethodPost, "/api/v1/documents", map[string]string{})

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_Create_InvalidBody(t *testing.T) {
	h, _ := newDocumentHandler()
	c, w := newContext(t, http.MethodPost, "/api/v1/documents", []byte(`{"items": "nope"`))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_Create_EnforcedDuplicate(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, domain.ErrDuplicateDocumentNumber)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents", map[string]string{"doc_type": "Quotation"})
	setAuthContext(c, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDocumentHandler_Create_LookupTimeout(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrLookupTimeout)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents", map[string]string{})
	setAuthContext(c, uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestDocumentHandler_GetByID(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	userID, docID := uuid.New(), uuid.New()
	mockSvc.On("GetByID", mock.Anything, userID, docID).Return(&domain.Document{ID: docID}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents/"+docID.String(), nil)
	setAuthContext(c, userID)
	withID(c, docID.String())

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newDocumentHandler()
	c, w := newContext(t, http.MethodGet, "/api/v1/documents/xyz", nil)
	setAuthContext(c, uuid.New())
	withID(c, "xyz")

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrDocumentNotFound)

	id := uuid.New().String()
	c, w := newContext(t, http.MethodGet, "/api/v1/documents/"+id, nil)
	setAuthContext(c, uuid.New())
	withID(c, id)

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_List_Paginated(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	userID := uuid.New()
	mockSvc.On("List", mock.Anything, userID, 0, 100).
		Return([]domain.Document{{ID: uuid.New()}}, 7, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents?limit=100", nil)
	setAuthContext(c, userID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 7, resp.Meta.Total)
	assert.Equal(t, 100, resp.Meta.Limit)
}

func TestDocumentHandler_List_LimitClamped(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("List", mock.Anything, mock.Anything, 0, 20).Return([]domain.Document{}, 0, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents?limit=500&offset=-3", nil)
	setAuthContext(c, uuid.New())

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_List_ByType(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("ListByType", mock.Anything, mock.Anything, "Purchase Order").Return([]domain.Document{}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents?type=Purchase+Order", nil)
	setAuthContext(c, uuid.New())

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeResponse(t, w).Meta)
	mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_Update(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	userID, docID := uuid.New(), uuid.New()
	mockSvc.On("Update", mock.Anything, mock.MatchedBy(func(in *service.UpdateDocumentInput) bool {
		return in.UserID == userID && in.DocumentID == docID && in.GSTMode == "igst"
	})).Return(&service.SaveResult{Document: &domain.Document{ID: docID}, Warnings: []string{}}, nil)

	c, w := newContext(t, http.MethodPut, "/api/v1/documents/"+docID.String(), map[string]string{"gst_mode": "igst"})
	setAuthContext(c, userID)
	withID(c, docID.String())

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Update_InvalidMode(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("Update", mock.Anything, mock.Anything).Return(nil, gst.ErrInvalidMode)

	id := uuid.New().String()
	c, w := newContext(t, http.MethodPut, "/api/v1/documents/"+id, map[string]string{"gst_mode": "vat"})
	setAuthContext(c, uuid.New())
	withID(c, id)

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_GST_MODE", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_DeleteAndDeleteAll(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	userID, docID := uuid.New(), uuid.New()
	mockSvc.On("Delete", mock.Anything, userID, docID).Return(nil)
	mockSvc.On("DeleteAll", mock.Anything, userID).Return(3, nil)

	c, w := newContext(t, http.MethodDelete, "/api/v1/documents/"+docID.String(), nil)
	setAuthContext(c, userID)
	withID(c, docID.String())
	h.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(t, http.MethodDelete, "/api/v1/documents", nil)
	setAuthContext(c, userID)
	h.DeleteAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["count"])
}

func TestDocumentHandler_Import(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("Import", mock.Anything, mock.Anything, mock.MatchedBy(func(docs []domain.Document) bool {
		return len(docs) == 2
	})).Return(2, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents/import", map[string]interface{}{
		"documents": []map[string]interface{}{{"doc_type": "Invoice"}, {"doc_type": "Quotation"}},
	})
	setAuthContext(c, uuid.New())

	h.Import(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDocumentHandler_PDF(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	docID := uuid.New()
	mockSvc.On("RenderPDF", mock.Anything, mock.Anything, docID).Return(&service.RenderedPDF{
		Data:     []byte("%PDF-1.4"),
		Filename: "invoice_1_2024.pdf",
		URL:      "https://bucket.example/doc.pdf",
	}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents/"+docID.String()+"/pdf", nil)
	setAuthContext(c, uuid.New())
	withID(c, docID.String())

	h.PDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice_1_2024.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "https://bucket.example/doc.pdf", w.Header().Get("X-Document-URL"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestDocumentHandler_PDF_RendererUnavailable(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("RenderPDF", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrRendererUnavailable)

	id := uuid.New().String()
	c, w := newContext(t, http.MethodGet, "/", nil)
	setAuthContext(c, uuid.New())
	withID(c, id)

	h.PDF(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDocumentHandler_SummaryCSV(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	docID := uuid.New()
	mockSvc.On("ExportSummaryCSV", mock.Anything, mock.Anything, docID, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(3).(io.Writer), "Field,Value\n")
		}).
		Return("invoice_summary_2024-06-15.csv", nil)

	c, w := newContext(t, http.MethodGet, "/", nil)
	setAuthContext(c, uuid.New())
	withID(c, docID.String())

	h.SummaryCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice_summary_2024-06-15.csv")
	assert.Equal(t, "Field,Value\n", w.Body.String())
}

func TestDocumentHandler_PreviewTotals_Public(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	totals := &gst.Totals{
		SubTotal:   decimal.NewFromInt(1000),
		TotalGST:   decimal.NewFromInt(180),
		IGST:       decimal.NewFromInt(180),
		GrandTotal: decimal.NewFromInt(1180),
	}
	mockSvc.On("PreviewTotals", mock.MatchedBy(func(in *service.TotalsPreviewInput) bool {
		return in.IsSimpleMode && len(in.Items) == 1 &&
			in.Items[0].TaxableValue != nil && in.Items[0].TaxableValue.Equal(decimal.NewFromInt(1000))
	})).Return(totals, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/totals/preview", map[string]interface{}{
		"company_gstin":  "33AAAAA0000A1Z5",
		"client_gstin":   "29BBBBB0000B1Z5",
		"is_simple_mode": true,
		"items":          []map[string]interface{}{{"s_no": 1, "taxable_value": "1,000", "gst_rate": 18}},
	})

	h.PreviewTotals(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "1180", data["grand_total"])
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_InternalError(t *testing.T) {
	h, mockSvc := newDocumentHandler()
	mockSvc.On("DeleteAll", mock.Anything, mock.Anything).Return(0, errors.New("db down"))

	c, w := newContext(t, http.MethodDelete, "/", nil)
	setAuthContext(c, uuid.New())

	h.DeleteAll(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
