package middleware

import (
	"net/http"
	"strings"

	"coinvest/config"
	"coinvest/internal/auth"
	"coinvest/internal/domain"

	"github.com/gin-gonic/gin"
)

// Principal is the authenticated caller, resolved once from the JWT.
// Kind is either domain.PrincipalUser or domain.PrincipalAdmin; the ID
// points into the matching table.
type Principal struct {
	Kind  string
	ID    uint
	Email string
}

const principalKey = "principal"

// AuthRequired validates the bearer token and stores the resolved
// Principal in the request context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(principalKey, Principal{
			Kind:  claims.Kind,
			ID:    claims.PrincipalID,
			Email: claims.Email,
		})
		c.Next()
	}
}

// GetPrincipal returns the caller set by AuthRequired.
func GetPrincipal(c *gin.Context) Principal {
	v, _ := c.Get(principalKey)
	p, _ := v.(Principal)
	return p
}

// GetUserID returns the caller's user ID, or 0 for admin tokens.
func GetUserID(c *gin.Context) uint {
	p := GetPrincipal(c)
	if p.Kind != domain.PrincipalUser {
		return 0
	}
	return p.ID
}

// UserOnly rejects admin tokens on user-facing routes.
func UserOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c).Kind != domain.PrincipalUser {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user account required"})
			return
		}
		c.Next()
	}
}
