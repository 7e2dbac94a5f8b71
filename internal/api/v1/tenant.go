package v1

import (
	"net/http"

	"github.com/fakturo/fakturo/internal/api/dto"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/service"
	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	service service.TenantService
	logger  *logger.Logger
}

func NewTenantHandler(service service.TenantService, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{service: service, logger: logger}
}

// @Summary Get the current tenant
// @Tags Tenant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tenant [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List the current tenant's members
// @Tags Tenant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MembershipResponse
// @Router /tenant/members [get]
func (h *TenantHandler) ListMembers(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListMembers(c.Request.Context(), tenantID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update the current tenant
// @Tags Tenant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateTenantRequest true "Update tenant request"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /tenant [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateTenant(c.Request.Context(), tenantID, req)
	if err != nil {
		h.logger.Errorw("failed to update tenant", "tenant_id", tenantID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
