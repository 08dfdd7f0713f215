package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// DocumentHandler handles saved invoice, quotation and purchase order endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Create handles POST /api/v1/documents
// @Summary Save a document
// @Description Save a new document. Totals are recomputed from the items; an empty number is filled with the next free one.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body DocumentRequest true "Document"
// @Success 201 {object} Response{data=service.SaveResult} "Document saved, with advisory warnings"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Document number already exists"
// @Failure 504 {object} ErrorResponseBody "Number lookup timed out"
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document body")
		return
	}

	result, err := h.documentService.Create(c.Request.Context(), &service.CreateDocumentInput{
		UserID:        userID,
		DocumentInput: req.toInput(),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description Paginated list of saved documents, newest first. With type set, every document of that type is returned.
// @Tags documents
// @Produce json
// @Param type query string false "Document type (Invoice, Quotation, Purchase Order)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Invalid document type"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if docType := c.Query("type"); docType != "" {
		docs, err := h.documentService.ListByType(c.Request.Context(), userID, docType)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, docs)
		return
	}

	offset, limit := parsePagination(c)
	docs, total, err := h.documentService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/documents/:id
// @Summary Update a document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body DocumentRequest true "Document"
// @Success 200 {object} Response{data=service.SaveResult}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document number already exists"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document body")
		return
	}

	result, err := h.documentService.Update(c.Request.Context(), &service.UpdateDocumentInput{
		UserID:        userID,
		DocumentID:    docID,
		DocumentInput: req.toInput(),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), userID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "document deleted"})
}

// DeleteAll handles DELETE /api/v1/documents
// @Summary Delete every document
// @Tags documents
// @Produce json
// @Success 200 {object} Response{data=CountResponse}
// @Security BearerAuth
// @Router /documents [delete]
func (h *DocumentHandler) DeleteAll(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	n, err := h.documentService.DeleteAll(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: n})
}

// Import handles POST /api/v1/documents/import
// @Summary Import documents
// @Description Bulk insert documents exported elsewhere. Identity is reassigned and totals recomputed.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body ImportDocumentsRequest true "Documents"
// @Success 201 {object} Response{data=CountResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /documents/import [post]
func (h *DocumentHandler) Import(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req ImportDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documents array is required")
		return
	}

	n, err := h.documentService.Import(c.Request.Context(), userID, req.Documents)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, CountResponse{Count: n})
}

// PDF handles GET /api/v1/documents/:id/pdf
// @Summary Download document PDF
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Document ID (UUID)"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 503 {object} ErrorResponseBody "Renderer unavailable"
// @Security BearerAuth
// @Router /documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	rendered, err := h.documentService.RenderPDF(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if rendered.URL != "" {
		c.Header("X-Document-URL", rendered.URL)
	}
	RespondAttachment(c, "application/pdf", rendered.Filename, rendered.Data)
}

// SummaryCSV handles GET /api/v1/documents/:id/summary.csv
// @Summary Download document summary CSV
// @Tags documents
// @Produce text/csv
// @Param id path string true "Document ID (UUID)"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/summary.csv [get]
func (h *DocumentHandler) SummaryCSV(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	filename, err := h.documentService.ExportSummaryCSV(c.Request.Context(), userID, docID, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAttachment(c, "text/csv; charset=utf-8", filename, buf.Bytes())
}

// PreviewTotals handles POST /api/v1/totals/preview
// @Summary Compute totals
// @Description Run the GST totals engine over unsaved items. Unparseable numbers count as zero.
// @Tags totals
// @Accept json
// @Produce json
// @Param request body TotalsPreviewRequest true "Items and GSTINs"
// @Success 200 {object} Response{data=gst.Totals}
// @Failure 400 {object} ErrorResponseBody "Invalid GST mode"
// @Router /totals/preview [post]
func (h *DocumentHandler) PreviewTotals(c *gin.Context) {
	var req TotalsPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid totals body")
		return
	}

	totals, err := h.documentService.PreviewTotals(&service.TotalsPreviewInput{
		Items:        toLineItems(req.Items),
		CompanyGSTIN: req.CompanyGSTIN,
		ClientGSTIN:  req.ClientGSTIN,
		IsSimpleMode: req.IsSimpleMode,
		GSTMode:      req.GSTMode,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, totals)
}
