package testutil

import (
	"context"
	"sync"

	"github.com/fakturo/fakturo/internal/domain/membership"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

// InMemoryMembershipStore enforces the one-membership-per-principal
// constraint the same way the unique index does in postgres, so the
// concurrent-provisioning path is exercised in tests.
type InMemoryMembershipStore struct {
	mu          sync.Mutex
	memberships map[string]*membership.Membership // keyed by id
	byUser      map[string]string                 // user_id -> membership id
}

func NewInMemoryMembershipStore() *InMemoryMembershipStore {
	return &InMemoryMembershipStore{
		memberships: make(map[string]*membership.Membership),
		byUser:      make(map[string]string),
	}
}

func (s *InMemoryMembershipStore) Create(ctx context.Context, m *membership.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUser[m.UserID]; exists {
		return ierr.NewError("duplicate membership").
			WithHint("This principal already belongs to a tenant").
			WithReportableDetails(map[string]any{
				"user_id": m.UserID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	copied := *m
	s.memberships[m.ID] = &copied
	s.byUser[m.UserID] = m.ID
	return nil
}

func (s *InMemoryMembershipStore) GetByUserID(ctx context.Context, userID string) (*membership.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, exists := s.byUser[userID]; exists {
		copied := *s.memberships[id]
		return &copied, nil
	}
	return nil, ierr.NewError("membership not found").
		WithHintf("Principal %s has no membership", userID).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryMembershipStore) ListByTenant(ctx context.Context, tenantID string) ([]*membership.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*membership.Membership
	for _, m := range s.memberships {
		if m.TenantID == tenantID {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *InMemoryMembershipStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships = make(map[string]*membership.Membership)
	s.byUser = make(map[string]string)
}
