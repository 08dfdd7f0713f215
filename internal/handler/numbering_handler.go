package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// NumberingHandler handles document number suggestion and checks.
type NumberingHandler struct {
	numbering service.NumberingService
}

// NewNumberingHandler creates a new NumberingHandler.
func NewNumberingHandler(numbering service.NumberingService) *NumberingHandler {
	return &NumberingHandler{numbering: numbering}
}

// Next handles GET /api/v1/numbering/next
// @Summary Next free document number
// @Tags numbering
// @Produce json
// @Param type query string false "Document type" default(Invoice)
// @Success 200 {object} Response{data=NumberResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid document type"
// @Failure 504 {object} ErrorResponseBody "Lookup timed out"
// @Security BearerAuth
// @Router /numbering/next [get]
func (h *NumberingHandler) Next(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docType, err := domain.ParseDocumentType(c.Query("type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	number, err := h.numbering.NextNumber(c.Request.Context(), userID, docType)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, NumberResponse{Number: number})
}

// Recent handles GET /api/v1/numbering/recent
// @Summary Recently used numbers
// @Tags numbering
// @Produce json
// @Param type query string false "Document type" default(Invoice)
// @Param limit query int false "Maximum numbers" default(10)
// @Success 200 {object} Response{data=RecentNumbersResponse}
// @Security BearerAuth
// @Router /numbering/recent [get]
func (h *NumberingHandler) Recent(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docType, err := domain.ParseDocumentType(c.Query("type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	numbers, err := h.numbering.RecentNumbers(c.Request.Context(), userID, docType, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if numbers == nil {
		numbers = []string{}
	}

	RespondOK(c, RecentNumbersResponse{Numbers: numbers})
}

// Duplicate handles GET /api/v1/numbering/duplicate
// @Summary Check a number for duplicates
// @Tags numbering
// @Produce json
// @Param number query string true "Document number"
// @Param type query string false "Document type" default(Invoice)
// @Param exclude_id query string false "Document being edited (UUID)"
// @Success 200 {object} Response{data=DuplicateResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 504 {object} ErrorResponseBody "Lookup timed out"
// @Security BearerAuth
// @Router /numbering/duplicate [get]
func (h *NumberingHandler) Duplicate(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	number := c.Query("number")
	if number == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "number query parameter is required")
		return
	}
	docType, err := domain.ParseDocumentType(c.Query("type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var excludeID *uuid.UUID
	if raw := c.Query("exclude_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid exclude_id")
			return
		}
		excludeID = &id
	}

	exists, err := h.numbering.CheckDuplicate(c.Request.Context(), userID, number, docType, excludeID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DuplicateResponse{Number: number, Exists: exists})
}

// Validate handles POST /api/v1/numbering/validate
// @Summary Validate a number's format
// @Description Checks the #number/year format. Invalid input comes back with a corrected suggestion.
// @Tags numbering
// @Accept json
// @Produce json
// @Param request body ValidateNumberRequest true "Number"
// @Success 200 {object} Response{data=ValidateNumberResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Router /numbering/validate [post]
func (h *NumberingHandler) Validate(c *gin.Context) {
	var req ValidateNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	res := h.numbering.Validate(req.Number)
	out := ValidateNumberResponse{Valid: res.Valid, Error: res.Error}
	if !res.Valid {
		out.Suggestion = h.numbering.Suggest(req.Number)
	}

	RespondOK(c, out)
}
