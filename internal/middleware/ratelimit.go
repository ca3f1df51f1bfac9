package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hanulpark/portal/config"
	"github.com/hanulpark/portal/pkg/logger"
	"github.com/hanulpark/portal/pkg/response"
)

// LoginRateLimit 按客户端 IP 限制登录尝试频率。
// 配了 redis 时用固定窗口计数（多实例共享），否则退回进程内令牌桶。
// 默认关闭，开启与否不影响登录接口本身的行为。
func LoginRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if rdb != nil {
		return redisRateLimit(cfg, rdb)
	}
	return localRateLimit(cfg)
}

func redisRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	window := time.Duration(cfg.Window) * time.Second
	return func(c *gin.Context) {
		key := "ratelimit:login:" + c.ClientIP()
		ctx := c.Request.Context()

		cnt, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// redis 不可用时放行，限流属于附加防护
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if cnt == 1 {
			rdb.Expire(ctx, key, window)
		}
		if cnt > int64(cfg.Limit) {
			response.TooManyRequests(c, "Too many login attempts. Please wait.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func localRateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*rate.Limiter)
	)
	perSecond := rate.Limit(float64(cfg.Limit) / float64(cfg.Window))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		lim, ok := visitors[ip]
		if !ok {
			lim = rate.NewLimiter(perSecond, cfg.Limit)
			visitors[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			response.TooManyRequests(c, "Too many login attempts. Please wait.")
			c.Abort()
			return
		}
		c.Next()
	}
}
