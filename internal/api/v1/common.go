package v1

import (
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/gin-gonic/gin"
)

// tenantFromContext extracts the tenant id resolved by the auth middleware.
// Handlers pass it to services explicitly; no service reads it from ambient
// context itself.
func tenantFromContext(c *gin.Context) (string, error) {
	tenantID := types.GetTenantID(c.Request.Context())
	if tenantID == "" {
		return "", ierr.NewError("no tenant in request").
			WithHint("The session is not bound to a tenant yet").
			Mark(ierr.ErrPermissionDenied)
	}
	return tenantID, nil
}
