package product

import (
	"context"

	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/shopspring/decimal"
)

// Product is a reusable catalog entry for document line items. Products
// carry no number: unlike documents they are not part of any sequence.
type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	TaxRate     decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	types.BaseModel
}

func New(ctx context.Context, tenantID, name string) *Product {
	return &Product{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:      name,
		BaseModel: types.NewBaseModel(ctx, tenantID),
	}
}

// Copy returns an independent clone with a fresh id. The source is never
// touched.
func (p *Product) Copy(ctx context.Context) *Product {
	return &Product{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		TaxRate:     p.TaxRate,
		BaseModel:   types.NewBaseModel(ctx, p.TenantID),
	}
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ierr.NewError("product name is required").
			WithHint("Please provide a product name").
			Mark(ierr.ErrValidation)
	}
	if p.UnitPrice.IsNegative() {
		return ierr.NewError("negative unit price").
			WithHint("The unit price must not be negative").
			Mark(ierr.ErrValidation)
	}
	if p.TaxRate.IsNegative() {
		return ierr.NewError("negative tax rate").
			WithHint("The tax rate must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
