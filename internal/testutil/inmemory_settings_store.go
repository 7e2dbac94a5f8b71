package testutil

import (
	"context"
	"sync"

	"github.com/fakturo/fakturo/internal/domain/settings"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

// InMemorySettingsStore holds at most one settings row per tenant, like the
// unique index on settings.tenant_id.
type InMemorySettingsStore struct {
	mu       sync.RWMutex
	byTenant map[string]*settings.Settings
}

func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		byTenant: make(map[string]*settings.Settings),
	}
}

func (s *InMemorySettingsStore) Create(ctx context.Context, cfg *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTenant[cfg.TenantID]; exists {
		return ierr.NewError("settings already exist").
			WithHintf("Tenant %s already has settings", cfg.TenantID).
			Mark(ierr.ErrAlreadyExists)
	}

	copied := *cfg
	s.byTenant[cfg.TenantID] = &copied
	return nil
}

func (s *InMemorySettingsStore) GetByTenant(ctx context.Context, tenantID string) (*settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cfg, exists := s.byTenant[tenantID]; exists {
		copied := *cfg
		return &copied, nil
	}
	return nil, ierr.NewError("settings not found").
		WithHintf("Tenant %s has no settings", tenantID).
		Mark(ierr.ErrNotFound)
}

func (s *InMemorySettingsStore) Update(ctx context.Context, cfg *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTenant[cfg.TenantID]; !exists {
		return ierr.NewError("settings not found").
			WithHintf("Tenant %s has no settings", cfg.TenantID).
			Mark(ierr.ErrNotFound)
	}

	copied := *cfg
	s.byTenant[cfg.TenantID] = &copied
	return nil
}

func (s *InMemorySettingsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTenant = make(map[string]*settings.Settings)
}
