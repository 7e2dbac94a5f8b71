package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/fakturo/fakturo/internal/domain/product"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: make(map[string]*product.Product),
	}
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *p
	s.products[p.ID] = &copied
	return nil
}

func (s *InMemoryProductStore) Get(ctx context.Context, tenantID, id string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, exists := s.products[id]; exists && p.TenantID == tenantID {
		copied := *p
		return &copied, nil
	}
	return nil, ierr.NewError("product not found").
		WithHintf("Product %s was not found", id).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryProductStore) List(ctx context.Context, tenantID string) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*product.Product
	for _, p := range s.products {
		if p.TenantID == tenantID {
			copied := *p
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.products[p.ID]
	if !exists || existing.TenantID != p.TenantID {
		return ierr.NewError("product not found").
			WithHintf("Product %s was not found", p.ID).
			Mark(ierr.ErrNotFound)
	}

	copied := *p
	s.products[p.ID] = &copied
	return nil
}

func (s *InMemoryProductStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.products[id]
	if !exists || existing.TenantID != tenantID {
		return ierr.NewError("product not found").
			WithHintf("Product %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(s.products, id)
	return nil
}

func (s *InMemoryProductStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]*product.Product)
}
