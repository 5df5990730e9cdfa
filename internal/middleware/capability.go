package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/access"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
)

// RequireCapability must run after AuthMiddleware.
func RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role := CurrentUser(c)
		if !access.Allows(role, capability) {
			httperr.Respond(c, httperr.ErrForbidden("forbidden"))
			return
		}
		c.Next()
	}
}
