package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestWindowKey_SeparatesTiers(t *testing.T) {
	windowStart := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	defaultKey := windowKey(TierDefault, "203.0.113.9", windowStart)
	bookingKey := windowKey(TierBooking, "203.0.113.9", windowStart)

	// Browsing traffic and booking-critical traffic count in separate
	// windows, so seat-map requests cannot exhaust the checkout allowance.
	assert.NotEqual(t, defaultKey, bookingKey)
	assert.Equal(t, defaultKey, windowKey(TierDefault, "203.0.113.9", windowStart))
}

func TestWindowKey_SeparatesClientsAndWindows(t *testing.T) {
	windowStart := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	assert.NotEqual(t,
		windowKey(TierDefault, "203.0.113.9", windowStart),
		windowKey(TierDefault, "203.0.113.10", windowStart))
	assert.NotEqual(t,
		windowKey(TierDefault, "203.0.113.9", windowStart),
		windowKey(TierDefault, "203.0.113.9", windowStart.Add(time.Minute)))
}

func TestIsBookingCritical(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		expected bool
	}{
		{"checkout", http.MethodPost, "/api/v1/checkout", true},
		{"cancel", http.MethodPost, "/api/v1/bookings/42/cancel", true},
		{"seat map read", http.MethodGet, "/api/v1/sessions/1/seats", false},
		{"selection toggle", http.MethodPost, "/api/v1/selections/abc/toggle", false},
		{"booking list read", http.MethodGet, "/api/v1/bookings", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isBookingCritical(tt.method, tt.path))
		})
	}
}

func TestMiddleware_TierLimits(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Unreachable Redis makes Check fail open; tier selection still drives
	// the advertised limit, which is what this test pins down.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	limiter := NewRateLimiter(client, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 60,
		BookingRequests: 20,
	})

	engine := gin.New()
	engine.Use(Middleware(limiter))
	engine.GET("/api/v1/sessions/:id/seats", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.POST("/api/v1/checkout", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/1/seats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20", rec.Header().Get("X-RateLimit-Limit"))
}
