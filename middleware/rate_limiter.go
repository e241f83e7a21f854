package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fitgear/fitgear-api/config"
	"github.com/fitgear/fitgear-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rateLimitPrefix = "fitgear:ratelimit:"

// rateLimitClient identifies the caller: the signed-in user when the route
// carries a principal, otherwise the client IP.
func rateLimitClient(c *gin.Context) string {
	if p := PrincipalFromContext(c); p.Authenticated() {
		return "user:" + p.UserID
	}
	return "ip:" + c.ClientIP()
}

// RateLimiter allows maxRequests per caller within a fixed window shared by
// every route using the same scope. Without Redis, or when Redis errors,
// requests pass through unlimited.
func RateLimiter(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rateLimitPrefix + scope + ":" + rateLimitClient(c)

		count, err := config.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			config.Logger.Warn("⚠️ rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		ttl, err := config.RedisClient.PTTL(ctx, key).Result()
		// A key without expiry means the first request's EXPIRE never landed.
		if count == 1 || (err == nil && ttl < 0) {
			if err := config.RedisClient.Expire(ctx, key, window).Err(); err != nil {
				config.Logger.Warn("⚠️ rate limiter expiry not set", zap.String("scope", scope), zap.Error(err))
			}
			ttl = window
		}
		if ttl < 0 {
			ttl = 0
		}

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		rate := &models.RateLimit{
			Scope:          scope,
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetInSeconds: int((ttl + time.Second - 1) / time.Second),
		}
		c.Set(models.RateLimitContextKey, rate)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rate.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rate.Remaining))

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(rate.ResetInSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests, please slow down",
				Error:   true,
				Rate:    rate,
			})
			return
		}

		c.Next()
	}
}
