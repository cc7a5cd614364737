package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

// RateLimiterMiddleware is a fixed-window limiter keyed by client IP. It
// fails open: any Redis error lets the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		ttlCmd := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.WithError(err).Warn("rate limiter: redis unavailable, skipping")
			c.Next()
			return
		}

		count := incr.Val()
		ttl := ttlCmd.Val()
		// A key without expiry would block the client forever.
		if ttl < 0 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.WithError(err).WithField("key", key).Warn("rate limiter: expire failed, dropping key")
				rdb.Del(ctx, key)
				c.Next()
				return
			}
			ttl = window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			m.RateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
