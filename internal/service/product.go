package service

import (
	"context"

	"github.com/fakturo/fakturo/internal/api/dto"
)

type ProductService interface {
	CreateProduct(ctx context.Context, tenantID string, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, tenantID string) ([]*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, tenantID, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, tenantID, id string) error

	// DuplicateProduct clones a product into an independent copy with a
	// fresh id. Products carry no number, so unlike documents no sequence
	// is allocated. The source is never mutated.
	DuplicateProduct(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{
		ServiceParams: params,
	}
}

func (s *productService) CreateProduct(ctx context.Context, tenantID string, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProduct(ctx, tenantID)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) GetProduct(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	p, err := s.ProductRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) ListProducts(ctx context.Context, tenantID string) ([]*dto.ProductResponse, error) {
	products, err := s.ProductRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, dto.NewProductResponse(p))
	}
	return responses, nil
}

func (s *productService) UpdateProduct(ctx context.Context, tenantID, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.ProductRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.TaxRate != nil {
		p.TaxRate = *req.TaxRate
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.ProductRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) DeleteProduct(ctx context.Context, tenantID, id string) error {
	return s.ProductRepo.Delete(ctx, tenantID, id)
}

func (s *productService) DuplicateProduct(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	src, err := s.ProductRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	copied := src.Copy(ctx)
	if err := s.ProductRepo.Create(ctx, copied); err != nil {
		return nil, err
	}

	s.Logger.Infow("duplicated product",
		"tenant_id", tenantID,
		"source_id", src.ID,
		"product_id", copied.ID,
	)

	return dto.NewProductResponse(copied), nil
}
