package service

import (
	"testing"

	"github.com/fakturo/fakturo/internal/api/dto"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ProductServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ProductService
}

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func (s *ProductServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewProductService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		ProductRepo: stores.ProductRepo,
	})
}

func (s *ProductServiceSuite) seedProduct(tenantID string) *dto.ProductResponse {
	resp, err := s.service.CreateProduct(s.GetContext(), tenantID, dto.CreateProductRequest{
		Name:        "Consulting Day",
		Description: "One day of on-site consulting",
		UnitPrice:   decimal.NewFromInt(1200),
		TaxRate:     decimal.NewFromInt(19),
	})
	s.Require().NoError(err)
	return resp
}

func (s *ProductServiceSuite) TestCreateProduct() {
	resp := s.seedProduct("tenant_1")
	s.NotEmpty(resp.ID)
	s.Equal("Consulting Day", resp.Name)
	s.True(resp.UnitPrice.Equal(decimal.NewFromInt(1200)))
}

func (s *ProductServiceSuite) TestCreateProductRejectsNegativePrice() {
	_, err := s.service.CreateProduct(s.GetContext(), "tenant_1", dto.CreateProductRequest{
		Name:      "Broken",
		UnitPrice: decimal.NewFromInt(-1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ProductServiceSuite) TestDuplicateProduct() {
	src := s.seedProduct("tenant_1")

	dup, err := s.service.DuplicateProduct(s.GetContext(), "tenant_1", src.ID)
	s.NoError(err)

	// Fresh id, everything else copied. No number is involved.
	s.NotEqual(src.ID, dup.ID)
	s.Equal(src.Name, dup.Name)
	s.Equal(src.Description, dup.Description)
	s.True(dup.UnitPrice.Equal(src.UnitPrice))
	s.True(dup.TaxRate.Equal(src.TaxRate))

	// Both exist independently afterwards.
	list, err := s.service.ListProducts(s.GetContext(), "tenant_1")
	s.NoError(err)
	s.Len(list, 2)
}

func (s *ProductServiceSuite) TestDuplicateLeavesSourceUntouched() {
	src := s.seedProduct("tenant_1")
	before, err := s.GetStores().ProductRepo.Get(s.GetContext(), "tenant_1", src.ID)
	s.Require().NoError(err)

	_, err = s.service.DuplicateProduct(s.GetContext(), "tenant_1", src.ID)
	s.NoError(err)

	after, err := s.GetStores().ProductRepo.Get(s.GetContext(), "tenant_1", src.ID)
	s.NoError(err)
	s.Equal(before.Name, after.Name)
	s.Equal(before.UpdatedAt, after.UpdatedAt)
}

func (s *ProductServiceSuite) TestDuplicateIsTenantScoped() {
	src := s.seedProduct("tenant_1")

	_, err := s.service.DuplicateProduct(s.GetContext(), "tenant_2", src.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ProductServiceSuite) TestUpdateProduct() {
	src := s.seedProduct("tenant_1")

	name := "Consulting Day (Remote)"
	price := decimal.NewFromInt(950)
	resp, err := s.service.UpdateProduct(s.GetContext(), "tenant_1", src.ID, dto.UpdateProductRequest{
		Name:      &name,
		UnitPrice: &price,
	})
	s.NoError(err)
	s.Equal(name, resp.Name)
	s.True(resp.UnitPrice.Equal(price))
}

func (s *ProductServiceSuite) TestDeleteProduct() {
	src := s.seedProduct("tenant_1")

	s.NoError(s.service.DeleteProduct(s.GetContext(), "tenant_1", src.ID))

	_, err := s.service.GetProduct(s.GetContext(), "tenant_1", src.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
