package testutil

import (
	"context"
	"sync"

	"github.com/fakturo/fakturo/internal/auth"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
)

// MockAuthProvider is an in-process identity service for tests.
type MockAuthProvider struct {
	mu          sync.Mutex
	users       map[string]string // email -> principal id
	Assignments map[string]string // principal id -> tenant id
}

func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		users:       make(map[string]string),
		Assignments: make(map[string]string),
	}
}

func (p *MockAuthProvider) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}

func (p *MockAuthProvider) SignUp(ctx context.Context, req auth.AuthRequest) (*auth.AuthResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[req.Email]; exists {
		return nil, ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	principalID := types.GenerateUUID()
	p.users[req.Email] = principalID
	return &auth.AuthResponse{
		PrincipalID: principalID,
		Email:       req.Email,
		AuthToken:   "test-token-" + principalID,
	}, nil
}

func (p *MockAuthProvider) Login(ctx context.Context, req auth.AuthRequest) (*auth.AuthResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	principalID, exists := p.users[req.Email]
	if !exists {
		return nil, ierr.NewError("unknown user").
			WithHint("Invalid credentials").
			Mark(ierr.ErrPermissionDenied)
	}
	return &auth.AuthResponse{
		PrincipalID: principalID,
		Email:       req.Email,
		AuthToken:   "test-token-" + principalID,
	}, nil
}

func (p *MockAuthProvider) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return nil, ierr.NewError("not supported in tests").
		Mark(ierr.ErrInvalidOperation)
}

func (p *MockAuthProvider) AssignTenant(ctx context.Context, principalID, tenantID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Assignments[principalID] = tenantID
	return nil
}
