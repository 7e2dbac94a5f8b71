package membership

import (
	"context"
)

type Repository interface {
	// Create persists a membership. It must fail with an already-exists
	// error if the principal already has one, so concurrent first logins
	// converge on a single membership.
	Create(ctx context.Context, m *Membership) error
	GetByUserID(ctx context.Context, userID string) (*Membership, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Membership, error)
}
