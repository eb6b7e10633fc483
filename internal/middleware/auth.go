package middleware

import (
	"strings"

	"github.com/crimewatch/crimewatch-api/internal/pkg/jwt"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and stores the token identity on the
// context. Routes that need the full account record use the auth feature's
// Authenticate middleware instead; this guard is enough where only the
// caller's identity matters.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			// Treat the entire header value as the token
			tokenString = authHeader
		}

		claims, err := jwt.ValidateToken(tokenString, secret)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}
