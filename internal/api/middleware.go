package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hoardspace/bms-backend/internal/auth"
)

// RequireAdmin checks that the authenticated user carries the admin role.
// Must run after the auth middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "admin access required",
			})
			return
		}
		c.Next()
	}
}
