package auth

import (
	"context"

	"github.com/fakturo/fakturo/internal/config"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/golang-jwt/jwt/v4"
	supabase "github.com/nedpals/supabase-go"
)

type supabaseAuth struct {
	authConfig config.AuthConfig
	client     *supabase.Client
}

func NewSupabaseAuth(cfg *config.Configuration) Provider {
	client := supabase.CreateClient(cfg.Auth.Supabase.BaseURL, cfg.Auth.Supabase.ServiceKey)

	return &supabaseAuth{
		authConfig: cfg.Auth,
		client:     client,
	}
}

func (s *supabaseAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}

func (s *supabaseAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	_, err := s.client.Auth.SignUp(ctx, supabase.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to sign up with identity service").
			Mark(ierr.ErrRemoteUnavailable)
	}

	return s.Login(ctx, req)
}

func (s *supabaseAuth) Login(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	user, err := s.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to authenticate").
			Mark(ierr.ErrPermissionDenied)
	}

	return &AuthResponse{
		PrincipalID: user.User.ID,
		Email:       user.User.Email,
		AuthToken:   user.AccessToken,
	}, nil
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", token.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.authConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	principalID, ok := claims["sub"].(string)
	if !ok {
		return nil, ierr.NewError("token missing principal id").
			Mark(ierr.ErrPermissionDenied)
	}

	email, _ := claims["email"].(string)

	// tenant_id lives in app_metadata once the principal has been assigned
	var tenantID string
	if appMetadata, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if tid, ok := appMetadata["tenant_id"].(string); ok {
			tenantID = tid
		}
	}

	return &Claims{
		PrincipalID: principalID,
		Email:       email,
		TenantID:    tenantID,
	}, nil
}

func (s *supabaseAuth) AssignTenant(ctx context.Context, principalID, tenantID string) error {
	params := supabase.AdminUserParams{
		AppMetadata: map[string]interface{}{
			"tenant_id": tenantID,
		},
	}

	if _, err := s.client.Admin.UpdateUser(ctx, principalID, params); err != nil {
		return ierr.WithError(err).
			WithHint("Unable to assign tenant to principal in identity service").
			Mark(ierr.ErrRemoteUnavailable)
	}

	return nil
}
