package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/fakturo/fakturo/internal/domain/customer"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

type InMemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*customer.Customer
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		customers: make(map[string]*customer.Customer),
	}
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *c
	s.customers[c.ID] = &copied
	return nil
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, tenantID, id string) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, exists := s.customers[id]; exists && c.TenantID == tenantID {
		copied := *c
		return &copied, nil
	}
	return nil, ierr.NewError("customer not found").
		WithHintf("Customer %s was not found", id).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCustomerStore) List(ctx context.Context, tenantID string) ([]*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*customer.Customer
	for _, c := range s.customers {
		if c.TenantID == tenantID {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.customers[c.ID]
	if !exists || existing.TenantID != c.TenantID {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	copied := *c
	s.customers[c.ID] = &copied
	return nil
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.customers[id]
	if !exists || existing.TenantID != tenantID {
		return ierr.NewError("customer not found").
			WithHintf("Customer %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(s.customers, id)
	return nil
}

func (s *InMemoryCustomerStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = make(map[string]*customer.Customer)
}
