package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter configuration
type Config struct {
	Enabled         bool
	WindowDuration  time.Duration
	DefaultRequests int
	BookingRequests int
	WhitelistedIPs  []string
}

// Limit tiers. Each tier counts in its own window so that general browsing
// traffic never consumes the booking-critical allowance.
const (
	TierDefault = "default"
	TierBooking = "booking"
)

// Result describes the outcome of a rate limit check
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter implements a fixed-window counter on Redis. The window key is
// derived from the client key and the current window start, so counters clean
// themselves up via TTL.
type RateLimiter struct {
	client *redis.Client
	config *Config
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{client: client, config: config}
}

// Check increments the window counter for key within the given tier and
// reports whether the request is within limit. A Redis failure fails open:
// limiting is advisory here, it must never take the booking path down.
func (rl *RateLimiter) Check(ctx context.Context, tier, key string, limit int) Result {
	now := time.Now()
	windowStart := now.Truncate(rl.config.WindowDuration)
	resetAt := windowStart.Add(rl.config.WindowDuration)
	redisKey := windowKey(tier, key, windowStart)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, rl.config.WindowDuration)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{Allowed: true, Limit: limit, Remaining: limit, ResetAt: resetAt}
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

func windowKey(tier, key string, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", tier, key, windowStart.Unix())
}

// IsWhitelisted reports whether ip bypasses rate limiting
func (rl *RateLimiter) IsWhitelisted(ip string) bool {
	for _, whitelisted := range rl.config.WhitelistedIPs {
		if whitelisted == ip {
			return true
		}
	}
	return false
}
