package middleware

import (
	"net/http"

	"coinvest/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the caller authenticated with an admin token.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c).Kind != domain.PrincipalAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
