package service

import (
	"context"

	"github.com/fakturo/fakturo/internal/api/dto"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, tenantID string, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, tenantID string) ([]*dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, tenantID, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, tenantID, id string) error
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, tenantID string, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCustomer(ctx, tenantID)
	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) GetCustomer(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) ListCustomers(ctx context.Context, tenantID string) ([]*dto.CustomerResponse, error) {
	customers, err := s.CustomerRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, dto.NewCustomerResponse(c))
	}
	return responses, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, tenantID, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}

	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, tenantID, id string) error {
	return s.CustomerRepo.Delete(ctx, tenantID, id)
}
