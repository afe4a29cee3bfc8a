package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a rate limiting middleware for Gin, keyed by client IP.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			resetTime := limiter.GetResetTime(key)

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))
			c.Header("Retry-After", "60")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests, please try again later.",
				"reset_time": resetTime.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
