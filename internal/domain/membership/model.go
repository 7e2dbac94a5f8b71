package membership

import (
	"context"

	"github.com/fakturo/fakturo/internal/types"
)

// Membership binds one authenticated principal to exactly one tenant.
// A principal has at most one membership; every tenant has at least one
// membership with IsOwner set (its creator).
type Membership struct {
	ID      string               `db:"id" json:"id"`
	UserID  string               `db:"user_id" json:"user_id"`
	Email   string               `db:"email" json:"email"`
	Role    types.MembershipRole `db:"role" json:"role"`
	IsOwner bool                 `db:"is_owner" json:"is_owner"`
	types.BaseModel
}

// NewOwner creates the owner membership that is provisioned together with a
// fresh tenant.
func NewOwner(ctx context.Context, userID, email, tenantID string) *Membership {
	return &Membership{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MEMBERSHIP),
		UserID:    userID,
		Email:     email,
		Role:      types.MembershipRoleAdmin,
		IsOwner:   true,
		BaseModel: types.NewBaseModel(ctx, tenantID),
	}
}
