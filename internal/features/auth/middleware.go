package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/pkg/jwt"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
)

// Authenticate creates a Gin middleware that validates the bearer token and
// loads the full account record into the context under "user". The account
// is reloaded on every request so role or department changes apply without
// waiting for token expiry.
func Authenticate(repo *Repository, cfg *config.Config) gin.HandlerFunc {
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

		user, err := repo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// 401 is safest for auth regardless of the underlying cause
			response.Unauthorized(c, "User not found", "USER_NOT_FOUND")
			c.Abort()
			return
		}

		if !user.IsActive {
			response.Forbidden(c, "Account is deactivated", "ACCOUNT_DEACTIVATED")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID.Hex())
		c.Next()
	}
}

// RequireRole restricts a route to accounts holding one of the given roles.
// Must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient permissions", "FORBIDDEN")
		c.Abort()
	}
}

// CurrentUser returns the authenticated account from the context, or nil
// if Authenticate has not run.
func CurrentUser(c *gin.Context) *User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, ok := v.(*User)
	if !ok {
		return nil
	}
	return user
}
