package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smalltable/catering-app/utils"
)

// RequireVendor allows vendor and admin identities through.
func RequireVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if !identity.IsVendor() && !identity.IsAdmin() {
			utils.RespondError(c, http.StatusForbidden, errors.New("vendor access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows admin identities only.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if !identity.IsAdmin() {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
