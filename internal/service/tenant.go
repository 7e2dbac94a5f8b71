package service

import (
	"context"
	"strings"

	"github.com/fakturo/fakturo/internal/api/dto"
	"github.com/fakturo/fakturo/internal/domain/membership"
	"github.com/fakturo/fakturo/internal/domain/settings"
	"github.com/fakturo/fakturo/internal/domain/tenant"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

type TenantService interface {
	// ResolveTenant returns the tenant the principal belongs to and the
	// membership binding them to it, lazily provisioning both on first
	// touch. It is idempotent: resolving the same principal twice always
	// yields the same tenant.
	ResolveTenant(ctx context.Context, principalID, email, tenantName string) (*tenant.Tenant, *membership.Membership, error)

	GetTenant(ctx context.Context, tenantID string) (*dto.TenantResponse, error)
	UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	ListMembers(ctx context.Context, tenantID string) ([]*dto.MembershipResponse, error)
}

type tenantService struct {
	ServiceParams
}

func NewTenantService(params ServiceParams) TenantService {
	return &tenantService{
		ServiceParams: params,
	}
}

func (s *tenantService) ResolveTenant(ctx context.Context, principalID, email, tenantName string) (*tenant.Tenant, *membership.Membership, error) {
	m, err := s.MembershipRepo.GetByUserID(ctx, principalID)
	if err == nil {
		t, err := s.TenantRepo.GetByID(ctx, m.TenantID)
		if err != nil {
			return nil, nil, err
		}
		return t, m, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, nil, err
	}

	if tenantName == "" {
		tenantName = defaultTenantName(email)
	}

	newTenant := tenant.New(ctx, tenantName, email)
	owner := membership.NewOwner(ctx, principalID, email, newTenant.ID)

	// Provision tenant, owner membership and the settings seed atomically.
	// The unique constraint on memberships.user_id is the arbiter when two
	// first resolves race: the loser rolls back entirely.
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TenantRepo.Create(ctx, newTenant); err != nil {
			return err
		}
		if err := s.MembershipRepo.Create(ctx, owner); err != nil {
			return err
		}
		return s.SettingsRepo.Create(ctx, settings.NewDefault(ctx, newTenant.ID))
	})
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			// Lost the race: a concurrent resolve provisioned first.
			// Converge on the winner's tenant.
			winner, lookupErr := s.MembershipRepo.GetByUserID(ctx, principalID)
			if lookupErr != nil {
				return nil, nil, lookupErr
			}
			t, lookupErr := s.TenantRepo.GetByID(ctx, winner.TenantID)
			if lookupErr != nil {
				return nil, nil, lookupErr
			}
			return t, winner, nil
		}
		return nil, nil, err
	}

	// Push the assignment into the identity service so future tokens carry
	// the tenant id. A failure here is not fatal: the membership lookup
	// re-derives the tenant on every request.
	if err := s.AuthProvider.AssignTenant(ctx, principalID, newTenant.ID); err != nil {
		s.Logger.Warnw("failed to assign tenant in identity service",
			"principal_id", principalID,
			"tenant_id", newTenant.ID,
			"error", err,
		)
	}

	s.Logger.Infow("provisioned tenant for principal",
		"principal_id", principalID,
		"tenant_id", newTenant.ID,
		"slug", newTenant.Slug,
	)

	return newTenant, owner, nil
}

func (s *tenantService) GetTenant(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return dto.NewTenantResponse(t), nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, req dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	t, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.Address != nil {
		t.Address = *req.Address
	}

	if err := s.TenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return dto.NewTenantResponse(t), nil
}

func (s *tenantService) ListMembers(ctx context.Context, tenantID string) ([]*dto.MembershipResponse, error) {
	members, err := s.MembershipRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MembershipResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, dto.NewMembershipResponse(m))
	}
	return responses, nil
}

// defaultTenantName derives a workspace name from the principal's email when
// signup did not provide one.
func defaultTenantName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "workspace"
}
