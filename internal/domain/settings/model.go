package settings

import (
	"context"

	"github.com/fakturo/fakturo/internal/types"
	"github.com/shopspring/decimal"
)

// Settings holds the per-tenant defaults seeded exactly once when the tenant
// is provisioned: tax rate, payment terms and the numbering patterns used by
// the sequence allocator.
type Settings struct {
	ID              string          `db:"id" json:"id"`
	DefaultTaxRate  decimal.Decimal `db:"default_tax_rate" json:"default_tax_rate"`
	PaymentTermDays int             `db:"payment_term_days" json:"payment_term_days"`
	InvoicePattern  string          `db:"invoice_pattern" json:"invoice_pattern"`
	OfferPattern    string          `db:"offer_pattern" json:"offer_pattern"`
	types.BaseModel
}

// NewDefault returns the one-time seed for a fresh tenant.
func NewDefault(ctx context.Context, tenantID string) *Settings {
	return &Settings{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS),
		DefaultTaxRate:  decimal.NewFromInt(19),
		PaymentTermDays: 14,
		InvoicePattern:  types.DefaultInvoicePattern,
		OfferPattern:    types.DefaultOfferPattern,
		BaseModel:       types.NewBaseModel(ctx, tenantID),
	}
}

// PatternFor returns the numbering pattern configured for a document kind.
func (s *Settings) PatternFor(kind types.DocumentKind) string {
	if kind == types.DocumentKindOffer {
		return s.OfferPattern
	}
	return s.InvoicePattern
}
