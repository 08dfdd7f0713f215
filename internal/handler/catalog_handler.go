package handler

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

const (
	maxImportBytes = 5 << 20
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CatalogHandler handles the per-user client and product catalogs.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func catalogKind(c *gin.Context) (domain.CatalogKind, bool) {
	kind := domain.CatalogKind(c.Param("kind"))
	if !domain.ValidCatalogKinds[kind] {
		HandleError(c, domain.ErrInvalidCatalogKind)
		return "", false
	}
	return kind, true
}

// Get handles GET /api/v1/catalogs/:kind
// @Summary Get a catalog
// @Tags catalogs
// @Produce json
// @Param kind path string true "clients or products"
// @Success 200 {object} Response{data=[]domain.ClientRecord}
// @Failure 400 {object} ErrorResponseBody "Invalid catalog kind"
// @Security BearerAuth
// @Router /catalogs/{kind} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	if kind == domain.CatalogProducts {
		products, err := h.catalogService.GetProducts(c.Request.Context(), userID)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, products)
		return
	}

	clients, err := h.catalogService.GetClients(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, clients)
}

// Save handles PUT /api/v1/catalogs/:kind
// @Summary Replace a catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Param kind path string true "clients or products"
// @Param request body SaveCatalogRequest true "Records"
// @Success 200 {object} Response{data=domain.CatalogInfo}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /catalogs/{kind} [put]
func (h *CatalogHandler) Save(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	var req SaveCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid catalog body")
		return
	}

	var (
		info *domain.CatalogInfo
		err  error
	)
	if kind == domain.CatalogProducts {
		info, err = h.catalogService.SaveProducts(c.Request.Context(), userID, req.Products)
	} else {
		info, err = h.catalogService.SaveClients(c.Request.Context(), userID, req.Clients)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// Clear handles DELETE /api/v1/catalogs/:kind
// @Summary Clear a catalog
// @Tags catalogs
// @Produce json
// @Param kind path string true "clients or products"
// @Success 200 {object} Response{data=MessageResponse}
// @Security BearerAuth
// @Router /catalogs/{kind} [delete]
func (h *CatalogHandler) Clear(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	if err := h.catalogService.Clear(c.Request.Context(), userID, kind); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "catalog cleared"})
}

// Info handles GET /api/v1/catalogs/:kind/info
// @Summary Catalog status
// @Tags catalogs
// @Produce json
// @Param kind path string true "clients or products"
// @Success 200 {object} Response{data=domain.CatalogInfo}
// @Security BearerAuth
// @Router /catalogs/{kind}/info [get]
func (h *CatalogHandler) Info(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	info, err := h.catalogService.Info(c.Request.Context(), userID, kind)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// Suggest handles GET /api/v1/catalogs/:kind/suggest
// @Summary Autocomplete from a catalog
// @Tags catalogs
// @Produce json
// @Param kind path string true "clients or products"
// @Param q query string true "Search text (at least 2 characters)"
// @Param limit query int false "Maximum matches (max 10)" default(5)
// @Success 200 {object} Response{data=[]domain.ClientRecord}
// @Security BearerAuth
// @Router /catalogs/{kind}/suggest [get]
func (h *CatalogHandler) Suggest(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.Query("limit"))

	if kind == domain.CatalogProducts {
		products, err := h.catalogService.SuggestProducts(c.Request.Context(), userID, query, limit)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, products)
		return
	}

	clients, err := h.catalogService.SuggestClients(c.Request.Context(), userID, query, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, clients)
}

// Import handles POST /api/v1/catalogs/:kind/import
// @Summary Import a catalog file
// @Description Replaces the catalog with the rows of an uploaded CSV or XLSX file.
// @Tags catalogs
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "clients or products"
// @Param file formData file true "CSV or XLSX file (max 5MB)"
// @Success 200 {object} Response{data=domain.CatalogInfo}
// @Failure 400 {object} ErrorResponseBody "Missing or unsupported file"
// @Security BearerAuth
// @Router /catalogs/{kind}/import [post]
func (h *CatalogHandler) Import(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	var info *domain.CatalogInfo
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		info, err = h.catalogService.ImportCSV(c.Request.Context(), userID, kind, file)
	case ".xlsx":
		info, err = h.catalogService.ImportXLSX(c.Request.Context(), userID, kind, file)
	default:
		err = domain.ErrUnsupportedFileType
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// ImportSheet handles POST /api/v1/catalogs/:kind/import/sheet
// @Summary Import a catalog from Google Sheets
// @Description The sheet must be shared so that anyone with the link can view it.
// @Tags catalogs
// @Accept json
// @Produce json
// @Param kind path string true "clients or products"
// @Param request body SheetImportRequest true "Sheet link"
// @Success 200 {object} Response{data=domain.CatalogInfo}
// @Failure 400 {object} ErrorResponseBody "Invalid sheet link"
// @Failure 502 {object} ErrorResponseBody "Sheet could not be fetched"
// @Security BearerAuth
// @Router /catalogs/{kind}/import/sheet [post]
func (h *CatalogHandler) ImportSheet(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	var req SheetImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "url is required")
		return
	}

	info, err := h.catalogService.ImportGoogleSheet(c.Request.Context(), userID, kind, req.URL)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, info)
}

// Export handles GET /api/v1/catalogs/:kind/export
// @Summary Download a catalog
// @Tags catalogs
// @Produce text/csv
// @Param kind path string true "clients or products"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /catalogs/{kind}/export [get]
func (h *CatalogHandler) Export(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	kind, ok := catalogKind(c)
	if !ok {
		return
	}

	var (
		buf         bytes.Buffer
		filename    string
		contentType string
		err         error
	)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		filename, err = h.catalogService.ExportCSV(c.Request.Context(), userID, kind, &buf)
	case "xlsx":
		contentType = xlsxMIME
		filename, err = h.catalogService.ExportXLSX(c.Request.Context(), userID, kind, &buf)
	default:
		err = domain.ErrUnsupportedFileType
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAttachment(c, contentType, filename, buf.Bytes())
}
