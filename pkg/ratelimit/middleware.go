package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware applies the rate limiter to incoming requests. Booking-critical
// routes (checkout, cancel) get their own tighter budget.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !limiter.config.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if limiter.IsWhitelisted(ip) {
			c.Next()
			return
		}

		tier, limit := TierDefault, limiter.config.DefaultRequests
		if isBookingCritical(c.Request.Method, c.Request.URL.Path) {
			tier, limit = TierBooking, limiter.config.BookingRequests
		}

		result := limiter.Check(c.Request.Context(), tier, ip, limit)

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

func isBookingCritical(method, path string) bool {
	if method != http.MethodPost {
		return false
	}
	return strings.Contains(path, "/checkout") || strings.HasSuffix(path, "/cancel")
}
