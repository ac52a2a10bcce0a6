package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantGuard ensures tenant and user context is present.
// It relies on AuthMiddleware having already set both keys.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, hasTenant := c.Get(ContextKeyTenantID)
		_, hasUser := c.Get(ContextKeyUserID)
		if !hasTenant || !hasUser {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "tenant context required"},
			})
			return
		}
		c.Next()
	}
}
