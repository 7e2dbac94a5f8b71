package v1

import (
	"net/http"

	"github.com/fakturo/fakturo/internal/api/dto"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service service.ProductService
	logger  *logger.Logger
}

func NewProductHandler(service service.ProductService, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Create product request"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateProduct(c.Request.Context(), tenantID, req)
	if err != nil {
		h.logger.Errorw("failed to create product", "tenant_id", tenantID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a product by ID
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetProduct(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProductResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListProducts(c.Request.Context(), tenantID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body dto.UpdateProductRequest true "Update product request"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateProduct(c.Request.Context(), tenantID, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a product
// @Tags Products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Duplicate a product
// @Description Create an independent copy of the product with a fresh id
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 201 {object} dto.ProductResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /products/{id}/duplicate [post]
func (h *ProductHandler) DuplicateProduct(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.DuplicateProduct(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		h.logger.Errorw("failed to duplicate product", "tenant_id", tenantID, "product_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
