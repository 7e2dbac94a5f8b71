package product

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, tenantID, id string) (*Product, error)
	List(ctx context.Context, tenantID string) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, tenantID, id string) error
}
