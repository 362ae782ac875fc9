package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/task-vault/internal/config"
)

// fixedWindowScript counts a hit atomically: the first request in a
// window creates the counter with an expiry, later requests increment
// it. Returns the current count and the window's remaining TTL so the
// handler can compute Retry-After without a second round trip.
var fixedWindowScript = redis.NewScript(`
    local count = redis.call('INCR', KEYS[1])
    if count == 1 then
        redis.call('PEXPIRE', KEYS[1], ARGV[1])
    end
    local ttl = redis.call('PTTL', KEYS[1])
    return { count, ttl }
`)

// NewFixedWindow returns a fixed-window rate limiter keyed by client
// IP, meant for the auth endpoints. When the limiter is disabled or no
// Redis client is available the middleware is a passthrough; losing
// Redis should never take authentication down with it.
func NewFixedWindow(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":auth:" + ip

			ctx := c.Request().Context()
			vals, err := fixedWindowScript.Run(ctx, rdb, []string{key},
				cfg.Window.Milliseconds()).Result()
			if err != nil {
				// Redis hiccup: let the request through rather than
				// locking everyone out.
				c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
				return next(c)
			}

			arr, ok := vals.([]interface{})
			if !ok || len(arr) != 2 {
				return next(c)
			}
			count := asInt64(arr[0])
			ttlMs := asInt64(arr[1])

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				secs := int(math.Ceil(float64(ttlMs) / 1000.0))
				if secs < 0 {
					secs = int(cfg.Window / time.Second)
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"success": false,
					"error":   "too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
