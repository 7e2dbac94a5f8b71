package auth

import (
	"context"

	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/types"
)

// AuthRequest carries the credentials handed to the identity service.
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResponse is what the identity service returns on success.
type AuthResponse struct {
	PrincipalID string
	Email       string
	AuthToken   string
}

// Claims are the validated session claims the core consumes: the principal
// id and, when already assigned, the tenant id.
type Claims struct {
	PrincipalID string
	Email       string
	TenantID    string
}

// Provider abstracts the hosted identity service. Sign-in, sign-up and token
// validation are opaque to the core; it only consumes the resulting claims.
type Provider interface {
	GetProvider() types.AuthProvider
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	AssignTenant(ctx context.Context, principalID, tenantID string) error
}

func NewProvider(cfg *config.Configuration) Provider {
	switch cfg.Auth.Provider {
	case types.AuthProviderSupabase:
		return NewSupabaseAuth(cfg)
	default:
		return NewSupabaseAuth(cfg)
	}
}
