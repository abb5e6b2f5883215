package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/security"
)

// adminAuthMiddleware validates the bearer token on protected routes and
// stores the admin username in the request context.
func adminAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, errParse := security.ParseAdminToken(jwtSecret, token)
		if errParse != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("adminUsername", claims.Username)
		c.Next()
	}
}
