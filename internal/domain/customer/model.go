package customer

import (
	"context"

	"github.com/fakturo/fakturo/internal/types"
)

// Customer is the party a document is addressed to. Documents reference
// customers but are never owned by them.
type Customer struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`
	types.BaseModel
}

func New(ctx context.Context, tenantID, name, email string) *Customer {
	return &Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      name,
		Email:     email,
		BaseModel: types.NewBaseModel(ctx, tenantID),
	}
}
