package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func deny(c *gin.Context, limiter *RateLimiter, key string) {
	resetTime := limiter.GetResetTime(key)

	c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
	c.Header("X-RateLimit-Remaining", "0")
	c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))
	c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))

	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":       "Rate limit exceeded. Try again later.",
		"retry_after": time.Until(resetTime).Round(time.Second).String(),
		"reset_time":  resetTime.Format(time.RFC3339),
		"limit":       limiter.limit,
	})
	c.Abort()
}

func allowHeaders(c *gin.Context, limiter *RateLimiter, key string) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.GetRemaining(key)))
	c.Header("X-RateLimit-Reset", limiter.GetResetTime(key).Format(time.RFC3339))
}

// Middleware creates a rate limiting middleware keyed by client IP
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			deny(c, limiter, key)
			return
		}

		allowHeaders(c, limiter, key)
		c.Next()
	}
}

// UserBasedMiddleware creates a rate limiting middleware keyed by the
// authenticated user ID, falling back to client IP for anonymous requests.
func UserBasedMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}

		if !limiter.Allow(key) {
			deny(c, limiter, key)
			return
		}

		allowHeaders(c, limiter, key)
		c.Next()
	}
}
