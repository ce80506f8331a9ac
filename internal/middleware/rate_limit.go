package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitKeyPrefix = "cinemarathi:ratelimit:"
	rateLimitWindow    = time.Second
)

var errRateLimited = apperrors.New(apperrors.CodeLimitExceeded, "request", "Too many requests", http.StatusTooManyRequests)

// RateLimitMiddleware caps requests per second per client IP using a Redis counter.
// Redis failures let the request through.
func RateLimitMiddleware(rdb redis.Cmdable, limitPerSec int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKeyPrefix + c.ClientIP()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow)
		}

		if count > int64(limitPerSec) {
			c.Header("Retry-After", "1")
			apperrors.HandleError(c, errRateLimited)
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limitPerSec))
		c.Next()
	}
}
