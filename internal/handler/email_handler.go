package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/service"
)

// EmailHandler handles follow-up emails about saved documents.
type EmailHandler struct {
	emailService service.EmailService
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// Compose handles GET /api/v1/documents/:id/email
// @Summary Compose a follow-up
// @Description Template follow-up email with a mailto link.
// @Tags email
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=service.FollowUpEmail}
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/email [get]
func (h *EmailHandler) Compose(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	email, err := h.emailService.Compose(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, email)
}

// Draft handles POST /api/v1/documents/:id/email/draft
// @Summary Draft a follow-up with AI
// @Description Falls back to the template when no drafter is configured or drafting fails.
// @Tags email
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body DraftEmailRequest false "Tone"
// @Success 200 {object} Response{data=service.FollowUpEmail}
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/email/draft [post]
func (h *EmailHandler) Draft(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DraftEmailRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	email, err := h.emailService.Draft(c.Request.Context(), userID, docID, req.Tone)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, email)
}

// Send handles POST /api/v1/documents/:id/email/send
// @Summary Send a follow-up
// @Tags email
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body service.SendEmailInput false "Subject and body overrides"
// @Success 200 {object} Response{data=service.FollowUpEmail}
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 422 {object} ErrorResponseBody "Client has no email address"
// @Security BearerAuth
// @Router /documents/{id}/email/send [post]
func (h *EmailHandler) Send(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input service.SendEmailInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	email, err := h.emailService.Send(c.Request.Context(), userID, docID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, email)
}
