package v1

import (
	"net/http"

	"github.com/fakturo/fakturo/internal/api/dto"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service service.SettingsService
	logger  *logger.Logger
}

func NewSettingsHandler(service service.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

// @Summary Get tenant settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update tenant settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Update settings request"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	tenantID, err := tenantFromContext(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		h.logger.Errorw("failed to update settings", "tenant_id", tenantID, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
