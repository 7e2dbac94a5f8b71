package dto

import (
	"time"

	"github.com/fakturo/fakturo/internal/domain/membership"
	"github.com/fakturo/fakturo/internal/domain/tenant"
)

type TenantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UpdateTenantRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type MembershipResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	IsOwner   bool   `json:"is_owner"`
	CreatedAt string `json:"created_at"`
}

// NewTenantResponse converts a Tenant domain object into a TenantResponse DTO.
func NewTenantResponse(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Email:     t.Email,
		Phone:     t.Phone,
		Address:   t.Address,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

func NewMembershipResponse(m *membership.Membership) *MembershipResponse {
	return &MembershipResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Email:     m.Email,
		Role:      m.Role.String(),
		IsOwner:   m.IsOwner,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
