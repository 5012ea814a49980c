package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/attrition-insight/internal/monitoring"
)

func newFallbackLimiter(t *testing.T, limit int) *RateLimiter {
	t.Helper()
	client, err := NewRedisClient("")
	require.NoError(t, err)
	require.False(t, client.IsEnabled())

	return NewRateLimiter(client, Config{
		IPLimitPerMin:   limit,
		BurstMultiplier: 2,
	}, monitoring.NewMetrics())
}

func TestAllowIPFallback(t *testing.T) {
	rl := newFallbackLimiter(t, 60)

	result, err := rl.AllowIP(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 60, result.Limit)
}

func TestFallbackExhaustsBurst(t *testing.T) {
	rl := newFallbackLimiter(t, 1)

	// Burst floor is 5 tokens; the refill rate within a single test run
	// is negligible.
	allowed := 0
	var last *Result
	for i := 0; i < 10; i++ {
		result, err := rl.AllowIP(context.Background(), "10.0.0.2")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
		last = result
	}

	assert.Equal(t, 5, allowed)
	assert.False(t, last.Allowed)
	assert.Greater(t, last.RetryAfter.Seconds(), float64(0))
}

func TestFallbackIsolatesClients(t *testing.T) {
	rl := newFallbackLimiter(t, 1)

	for i := 0; i < 10; i++ {
		_, err := rl.AllowIP(context.Background(), "10.0.0.3")
		require.NoError(t, err)
	}

	result, err := rl.AllowIP(context.Background(), "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestMiddlewareRejectsWithHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := newFallbackLimiter(t, 1)

	router := gin.New()
	router.GET("/ping", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var lastCode int
	var lastHeaders http.Header
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.5:12345"
		router.ServeHTTP(w, req)
		lastCode = w.Code
		lastHeaders = w.Header()
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
	assert.NotEmpty(t, lastHeaders.Get("Retry-After"))
	assert.Equal(t, "1", lastHeaders.Get("X-RateLimit-Limit"))
}

func TestGetStats(t *testing.T) {
	rl := newFallbackLimiter(t, 60)

	_, err := rl.AllowIP(context.Background(), "10.0.0.6")
	require.NoError(t, err)

	stats := rl.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}
