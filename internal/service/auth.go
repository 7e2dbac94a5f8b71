package service

import (
	"context"

	"github.com/fakturo/fakturo/internal/api/dto"
	"github.com/fakturo/fakturo/internal/auth"
)

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	tenantService TenantService
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
		tenantService: NewTenantService(params),
	}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.AuthProvider.SignUp(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	t, m, err := s.tenantService.ResolveTenant(ctx, resp.PrincipalID, resp.Email, req.TenantName)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   resp.PrincipalID,
		TenantID: t.ID,
		Role:     m.Role.String(),
		IsOwner:  m.IsOwner,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.AuthProvider.Login(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	// First login provisions lazily, later logins resolve the existing
	// tenant. Either way the principal ends up with exactly one.
	t, m, err := s.tenantService.ResolveTenant(ctx, resp.PrincipalID, resp.Email, "")
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   resp.PrincipalID,
		TenantID: t.ID,
		Role:     m.Role.String(),
		IsOwner:  m.IsOwner,
	}, nil
}
