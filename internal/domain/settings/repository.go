package settings

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, s *Settings) error
	GetByTenant(ctx context.Context, tenantID string) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}
