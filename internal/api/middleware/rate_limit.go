package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"police-personnel/pkg/response"
)

// RateLimiter sliding-window counter. *redis.Client implements it and
// admits everything when nil.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit allows limit requests per client IP and route within window.
// Limiter errors let the request through.
func RateLimit(limiter RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, response.CodeTooManyRequest, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
