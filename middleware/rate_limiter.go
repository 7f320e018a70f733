package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RateLimiterConfig holds the configuration for rate limiting.
type RateLimiterConfig struct {
	MaxRequests int           // Maximum number of requests allowed per window
	Window      time.Duration // Time window for rate limiting
	KeyPrefix   string        // Redis key prefix, one per limited endpoint
	Redis       *redis.Client // nil disables limiting
}

// RateLimiterMiddleware limits requests per client IP using a Redis counter
// with a sliding expiry. Used on the public contact and login endpoints. A
// nil Redis client turns the middleware into a pass-through.
func RateLimiterMiddleware(cfg RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Redis == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s", cfg.KeyPrefix, c.RealIP())

			count, err := cfg.Redis.Incr(ctx, key).Result()
			if err != nil {
				// A broken limiter must not take the endpoint down.
				logger.Get().WithComponent("ratelimit").Warn("Redis unavailable, skipping rate limit", logger.Err(err))
				return next(c)
			}
			if count == 1 {
				cfg.Redis.Expire(ctx, key, cfg.Window)
			}
			if count > int64(cfg.MaxRequests) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests, please try again later.",
				})
			}

			return next(c)
		}
	}
}
