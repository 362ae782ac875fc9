package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/task-vault/internal/config"
)

func limiterUnderTest(t *testing.T, limit int, window time.Duration) echo.HandlerFunc {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.RateLimitConfig{Enabled: true, Limit: limit, Window: window, Prefix: "rl"}
	return NewFixedWindow(cfg, rdb)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}

func hit(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestFixedWindow_BlocksOverLimit(t *testing.T) {
	h := limiterUnderTest(t, 2, time.Minute)

	for i := 0; i < 2; i++ {
		rec := hit(t, h)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := hit(t, h)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestFixedWindow_HeadersOnAllowedRequest(t *testing.T) {
	h := limiterUnderTest(t, 5, time.Minute)

	rec := hit(t, h)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestFixedWindow_PassthroughWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Minute, Prefix: "rl"}
	h := NewFixedWindow(cfg, nil)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	// No Redis: the limiter must not lock anyone out.
	for i := 0; i < 5; i++ {
		rec := hit(t, h)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestFixedWindow_Disabled(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := config.RateLimitConfig{Enabled: false, Limit: 1, Window: time.Minute, Prefix: "rl"}
	h := NewFixedWindow(cfg, rdb)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
	for i := 0; i < 3; i++ {
		rec := hit(t, h)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
