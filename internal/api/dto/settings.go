package dto

import (
	"time"

	"github.com/fakturo/fakturo/internal/domain/settings"
	"github.com/shopspring/decimal"
)

type SettingsResponse struct {
	ID              string          `json:"id"`
	DefaultTaxRate  decimal.Decimal `json:"default_tax_rate"`
	PaymentTermDays int             `json:"payment_term_days"`
	InvoicePattern  string          `json:"invoice_pattern"`
	OfferPattern    string          `json:"offer_pattern"`
	UpdatedAt       string          `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	DefaultTaxRate  *decimal.Decimal `json:"default_tax_rate,omitempty"`
	PaymentTermDays *int             `json:"payment_term_days,omitempty" binding:"omitempty,min=0"`
	InvoicePattern  *string          `json:"invoice_pattern,omitempty"`
	OfferPattern    *string          `json:"offer_pattern,omitempty"`
}

func NewSettingsResponse(s *settings.Settings) *SettingsResponse {
	return &SettingsResponse{
		ID:              s.ID,
		DefaultTaxRate:  s.DefaultTaxRate,
		PaymentTermDays: s.PaymentTermDays,
		InvoicePattern:  s.InvoicePattern,
		OfferPattern:    s.OfferPattern,
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}
