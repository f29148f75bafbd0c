package middleware

import (
	"net/http"
	"strings"

	"almadina/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminTokenMiddleware guards catalog mutations with a bearer token checked
// against a bcrypt hash. An empty hash leaves the routes open.
func AdminTokenMiddleware(tokenHash string) gin.HandlerFunc {
	hash := []byte(tokenHash)
	return func(c *gin.Context) {
		if len(hash) == 0 {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			c.Abort()
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
