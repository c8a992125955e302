package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smalltable/catering-app/services"
	"github.com/smalltable/catering-app/utils"
)

const identityKey = "identity"

// AuthMiddleware validates the bearer token and resolves the acting identity
// once, so handlers and services receive an explicit services.Identity instead
// of probing claims ad hoc.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token has been revoked"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user ID in token"))
			c.Abort()
			return
		}

		identity := services.ResolveIdentity(db, claims.UserID, claims.Role)

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set(identityKey, identity)

		c.Next()
	}
}

// CurrentIdentity returns the identity resolved by AuthMiddleware, or
// Anonymous when the request passed through no auth layer.
func CurrentIdentity(c *gin.Context) services.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return services.Anonymous
	}
	identity, ok := value.(services.Identity)
	if !ok {
		return services.Anonymous
	}
	return identity
}
