package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// ReportHandler handles sales report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func reportInput(c *gin.Context) service.ReportInput {
	return service.ReportInput{
		Period:  c.Query("period"),
		Start:   c.Query("start"),
		End:     c.Query("end"),
		DocType: c.Query("type"),
	}
}

// Sales handles GET /api/v1/reports/sales
// @Summary Sales report
// @Description Totals, monthly and per-client breakdowns for a period, compared with the previous period of equal length.
// @Tags reports
// @Produce json
// @Param period query string false "thisMonth, lastMonth, thisQuarter, thisYear, lastYear or custom" default(thisYear)
// @Param start query string false "Custom period start (YYYY-MM-DD)"
// @Param end query string false "Custom period end (YYYY-MM-DD)"
// @Param type query string false "Document type or all" default(all)
// @Success 200 {object} Response{data=domain.SalesReport}
// @Failure 400 {object} ErrorResponseBody "Invalid period or date range"
// @Security BearerAuth
// @Router /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	report, err := h.reportService.Sales(c.Request.Context(), userID, reportInput(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles GET /api/v1/reports/sales/export
// @Summary Download a sales report
// @Tags reports
// @Produce application/json
// @Param period query string false "Report period" default(thisYear)
// @Param start query string false "Custom period start (YYYY-MM-DD)"
// @Param end query string false "Custom period end (YYYY-MM-DD)"
// @Param type query string false "Document type or all" default(all)
// @Param format query string false "json, xlsx or pdf" default(json)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 503 {object} ErrorResponseBody "Renderer unavailable"
// @Security BearerAuth
// @Router /reports/sales/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	input := reportInput(c)
	ctx := c.Request.Context()

	switch c.DefaultQuery("format", "json") {
	case "json":
		report, err := h.reportService.Sales(ctx, userID, input)
		if err != nil {
			HandleError(c, err)
			return
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			HandleError(c, fmt.Errorf("encoding report: %w", err))
			return
		}
		filename := fmt.Sprintf("sales_report_%s.json", report.GeneratedAt.Format("2006-01-02"))
		RespondAttachment(c, "application/json", filename, data)
	case "xlsx":
		var buf bytes.Buffer
		filename, err := h.reportService.ExportXLSX(ctx, userID, input, &buf)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondAttachment(c, xlsxMIME, filename, buf.Bytes())
	case "pdf":
		data, filename, err := h.reportService.ExportPDF(ctx, userID, input)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondAttachment(c, "application/pdf", filename, data)
	default:
		HandleError(c, domain.ErrUnsupportedFileType)
	}
}
