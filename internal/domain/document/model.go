package document

import (
	"context"
	"time"

	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/shopspring/decimal"
)

// Document is an invoice or offer. It is exclusively owned by its tenant and
// carries a tenant-scoped human-facing number next to its opaque id.
type Document struct {
	ID         string               `db:"id" json:"id"`
	Kind       types.DocumentKind   `db:"kind" json:"kind"`
	Number     string               `db:"number" json:"number"`
	SequenceNo int64                `db:"sequence_no" json:"sequence_no"`
	CustomerID string               `db:"customer_id" json:"customer_id"`
	DocStatus  types.DocumentStatus `db:"doc_status" json:"doc_status"`
	IssueDate  time.Time            `db:"issue_date" json:"issue_date"`
	DueDate    time.Time            `db:"due_date" json:"due_date"`
	Subtotal   decimal.Decimal      `db:"subtotal" json:"subtotal"`
	TaxTotal   decimal.Decimal      `db:"tax_total" json:"tax_total"`
	Total      decimal.Decimal      `db:"total" json:"total"`
	Notes      string               `db:"notes" json:"notes"`
	TimesSent  int                  `db:"times_sent" json:"times_sent"`
	SentAt     *time.Time           `db:"sent_at" json:"sent_at,omitempty"`
	Items      []*DocumentItem      `db:"-" json:"items,omitempty"`
	types.BaseModel
}

// DocumentItem is a line item owned exclusively by its parent document and
// deleted with it.
type DocumentItem struct {
	ID          string          `db:"id" json:"id"`
	DocumentID  string          `db:"document_id" json:"document_id"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	TaxRate     decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	types.BaseModel
}

// LineTotal is quantity times unit price, before tax.
func (i *DocumentItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

func (i *DocumentItem) Validate() error {
	if i.Description == "" {
		return ierr.NewError("missing item description").
			WithHint("Line items require a description").
			Mark(ierr.ErrValidation)
	}
	if i.Quantity.IsNegative() {
		return ierr.NewError("negative quantity").
			WithHint("Line item quantity must be non negative").
			Mark(ierr.ErrValidation)
	}
	if i.UnitPrice.IsNegative() {
		return ierr.NewError("negative unit price").
			WithHint("Line item unit price must be non negative").
			Mark(ierr.ErrValidation)
	}
	if i.TaxRate.IsNegative() {
		return ierr.NewError("negative tax rate").
			WithHint("Line item tax rate must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (d *Document) Validate() error {
	if err := d.Kind.Validate(); err != nil {
		return err
	}
	if err := d.DocStatus.ValidateFor(d.Kind); err != nil {
		return err
	}
	if d.CustomerID == "" {
		return ierr.NewError("missing customer reference").
			WithHint("Documents require a customer").
			Mark(ierr.ErrValidation)
	}
	for _, item := range d.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ComputeTotals recalculates subtotal, tax total and total from the items.
func (d *Document) ComputeTotals() {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, item := range d.Items {
		line := item.LineTotal()
		subtotal = subtotal.Add(line)
		taxTotal = taxTotal.Add(line.Mul(item.TaxRate).Div(hundred))
	}
	d.Subtotal = subtotal
	d.TaxTotal = taxTotal
	d.Total = subtotal.Add(taxTotal)
}

// IsOverdue reports the derived overdue state: a document is overdue iff it
// is sent and its due date has passed. The persisted overdue status value is
// a manual override only and deliberately does not feed this predicate,
// since it can go stale when the clock advances without a write.
func (d *Document) IsOverdue(now time.Time) bool {
	return d.DocStatus == types.DocumentStatusSent && d.DueDate.Before(now)
}

// NewItem creates a line item bound to the given document.
func NewItem(ctx context.Context, tenantID, documentID string) *DocumentItem {
	return &DocumentItem{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT_ITEM),
		DocumentID: documentID,
		BaseModel:  types.NewBaseModel(ctx, tenantID),
	}
}
