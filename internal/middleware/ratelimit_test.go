package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanulpark/portal/config"
)

func limitedEngine(limiter gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", limiter, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func hit(r *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRedisRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := config.RateLimitConfig{Enabled: true, Limit: 2, Window: 60}
	r := limitedEngine(LoginRateLimit(cfg, rdb))

	require.Equal(t, http.StatusOK, hit(r))
	require.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))

	// 窗口过期后计数清零
	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, hit(r))
}

func TestRedisRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()
	defer rdb.Close()

	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 60}
	r := limitedEngine(LoginRateLimit(cfg, rdb))

	// redis 挂掉时限流放行，不影响登录
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
}

func TestLocalRateLimit(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 2, Window: 60}
	r := limitedEngine(LoginRateLimit(cfg, nil))

	require.Equal(t, http.StatusOK, hit(r))
	require.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
}
