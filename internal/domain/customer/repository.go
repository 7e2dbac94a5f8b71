package customer

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, tenantID, id string) (*Customer, error)
	List(ctx context.Context, tenantID string) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, tenantID, id string) error
}
