package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request limiter keyed by client IP and route.
type RateLimiter struct {
	redis    *redis.Client
	requests int
	window   time.Duration
}

// NewRateLimiter creates a limiter allowing requests per window.
func NewRateLimiter(redisClient *redis.Client, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:    redisClient,
		requests: requests,
		window:   window,
	}
}

// Handler returns the gin middleware. Redis failures let the request through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())

		allowed, remaining, err := rl.isAllowed(c.Request.Context(), key)
		if err != nil {
			log.Printf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			abortJSON(c, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}

		c.Next()
	}
}

// isAllowed counts the hit in a fixed window. The TTL is set only by the hit
// that creates the key, so rejected retries do not extend the window.
func (rl *RateLimiter) isAllowed(ctx context.Context, key string) (bool, int, error) {
	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, rl.requests, err
	}

	if count == 1 {
		if err := rl.redis.Expire(ctx, key, rl.window).Err(); err != nil {
			return true, rl.requests, err
		}
	}

	remaining := rl.requests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= rl.requests, remaining, nil
}
