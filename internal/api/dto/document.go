package dto

import (
	"time"

	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/fakturo/fakturo/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateDocumentItemRequest struct {
	Description string           `json:"description" binding:"required" validate:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"required"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
}

type CreateDocumentRequest struct {
	Kind       types.DocumentKind          `json:"kind" binding:"required" validate:"required"`
	CustomerID string                      `json:"customer_id" binding:"required" validate:"required"`
	IssueDate  *time.Time                  `json:"issue_date,omitempty"`
	DueDate    *time.Time                  `json:"due_date,omitempty"`
	Notes      string                      `json:"notes" binding:"omitempty"`
	Items      []CreateDocumentItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateDocumentRequest edits draft content. Status never changes through
// this request; the lifecycle endpoints own status.
type UpdateDocumentRequest struct {
	CustomerID *string                     `json:"customer_id,omitempty"`
	IssueDate  *time.Time                  `json:"issue_date,omitempty"`
	DueDate    *time.Time                  `json:"due_date,omitempty"`
	Notes      *string                     `json:"notes,omitempty"`
	Items      []CreateDocumentItemRequest `json:"items,omitempty" binding:"omitempty,dive"`
}

type OverrideStatusRequest struct {
	DocStatus types.DocumentStatus `json:"doc_status" binding:"required" validate:"required"`
}

type ListDocumentsRequest struct {
	Kind       *types.DocumentKind   `form:"kind"`
	DocStatus  *types.DocumentStatus `form:"doc_status"`
	CustomerID *string               `form:"customer_id"`
	Overdue    *bool                 `form:"overdue"`
}

type DocumentItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type DocumentResponse struct {
	ID          string                  `json:"id"`
	Kind        types.DocumentKind      `json:"kind"`
	Number      string                  `json:"number"`
	CustomerID  string                  `json:"customer_id"`
	DocStatus   types.DocumentStatus    `json:"doc_status"`
	IsOverdue   bool                    `json:"is_overdue"`
	IsDuplicate bool                    `json:"is_duplicate"`
	IssueDate   time.Time               `json:"issue_date"`
	DueDate     time.Time               `json:"due_date"`
	Subtotal    decimal.Decimal         `json:"subtotal"`
	TaxTotal    decimal.Decimal         `json:"tax_total"`
	Total       decimal.Decimal         `json:"total"`
	Notes       string                  `json:"notes,omitempty"`
	TimesSent   int                     `json:"times_sent"`
	SentAt      *time.Time              `json:"sent_at,omitempty"`
	Items       []*DocumentItemResponse `json:"items,omitempty"`
	CreatedAt   string                  `json:"created_at"`
	UpdatedAt   string                  `json:"updated_at"`
}

func (r *CreateDocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Kind.Validate()
}

// NewDocumentResponse renders a document for the API. Overdue and duplicate
// are derived against the supplied clock, never read from storage.
func NewDocumentResponse(d *document.Document, now time.Time) *DocumentResponse {
	resp := &DocumentResponse{
		ID:          d.ID,
		Kind:        d.Kind,
		Number:      d.Number,
		CustomerID:  d.CustomerID,
		DocStatus:   d.DocStatus,
		IsOverdue:   d.IsOverdue(now),
		IsDuplicate: d.IsDuplicate(),
		IssueDate:   d.IssueDate,
		DueDate:     d.DueDate,
		Subtotal:    d.Subtotal,
		TaxTotal:    d.TaxTotal,
		Total:       d.Total,
		Notes:       d.Notes,
		TimesSent:   d.TimesSent,
		SentAt:      d.SentAt,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
	for _, item := range d.Items {
		resp.Items = append(resp.Items, &DocumentItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			LineTotal:   item.LineTotal(),
		})
	}
	return resp
}
