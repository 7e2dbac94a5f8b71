package v1

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/fakturo/fakturo/internal/api/dto"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/service"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service service.DocumentService
	logger  *logger.Logger
}

func NewDocumentHandler(service service.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{service: service, logger: logger}
}

// @Summary Create a document
// @Description Create a draft invoice or offer with a freshly allocated number
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDocumentRequest true "Create document request"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateDocument(c.Request.Context(), tenantID, req)
	if err != nil {
		h.logger.Errorw("failed to create document", "tenant_id", tenantID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a document by ID
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetDocument(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List documents
// @Description List documents with optional kind, stored status, customer and derived overdue filters
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Document kind"
// @Param doc_status query string false "Stored document status"
// @Param customer_id query string false "Customer ID"
// @Param overdue query bool false "Derived overdue filter"
// @Success 200 {array} dto.DocumentResponse
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListDocuments(c.Request.Context(), tenantID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a draft document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body dto.UpdateDocumentRequest true "Update document request"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateDocument(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a draft document
// @Tags Documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 204
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Send a document by email
// @Description Deliver the rendered document and mark it sent on success
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /documents/{id}/send [post]
func (h *DocumentHandler) SendDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	// The body is optional: without a recipient the customer's email is used.
	var req struct {
		Recipient string `json:"recipient" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SendByEmail(c.Request.Context(), tenantID, c.Param("id"), req.Recipient)
	if err != nil {
		h.logger.Errorw("failed to send document", "tenant_id", tenantID, "document_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Download a document as PDF
// @Description Render the document, marking drafts sent before the bytes leave
// @Tags Documents
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 502 {object} middleware.ErrorResponse
// @Router /documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	pdfBytes, doc, err := h.service.DownloadPDF(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.logger.Errorw("failed to render document", "tenant_id", tenantID, "document_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Number+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// @Summary Mark an invoice paid
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id}/pay [post]
func (h *DocumentHandler) MarkPaid(c *gin.Context) {
	h.lifecycle(c, h.service.MarkPaid)
}

// @Summary Accept an offer
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id}/accept [post]
func (h *DocumentHandler) AcceptOffer(c *gin.Context) {
	h.lifecycle(c, h.service.AcceptOffer)
}

// @Summary Reject an offer
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id}/reject [post]
func (h *DocumentHandler) RejectOffer(c *gin.Context) {
	h.lifecycle(c, h.service.RejectOffer)
}

// @Summary Duplicate a document
// @Description Create an independent draft copy with a fresh number and a provenance note
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /documents/{id}/duplicate [post]
func (h *DocumentHandler) DuplicateDocument(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Duplicate(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.logger.Errorw("failed to duplicate document", "tenant_id", tenantID, "document_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Override a document's status
// @Description Administrative override to any stored status legal for the kind
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body dto.OverrideStatusRequest true "Override status request"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id}/status [put]
func (h *DocumentHandler) OverrideStatus(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.OverrideStatus(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Clear a document's duplicate marker
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /documents/{id}/duplicate-marker [delete]
func (h *DocumentHandler) ClearDuplicateMarker(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ClearDuplicateMarker(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// lifecycle runs a natural state transition and renders the result.
func (h *DocumentHandler) lifecycle(c *gin.Context, op func(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := op(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
