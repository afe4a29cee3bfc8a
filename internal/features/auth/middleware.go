package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/safezone/internal/config"
	"github.com/xyz-asif/safezone/internal/pkg/jwt"
	"github.com/xyz-asif/safezone/internal/pkg/response"
)

// NewAuthMiddleware creates a Gin middleware that validates the bearer token
// and loads the user onto the request context.
func NewAuthMiddleware(repo *Repository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization format", "INVALID_AUTH_FORMAT")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		user, err := repo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Unauthorized(c, "User not found", "USER_NOT_FOUND")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user placed on the context by the
// auth middleware.
func CurrentUser(c *gin.Context) (*User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := val.(*User)
	return user, ok
}
