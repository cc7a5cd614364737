package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../../../.env")

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       1,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test (Redis down): %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	require.NoError(t, rdb.FlushDB(ctx).Err())
	return rdb
}

func limitedRouter(rdb *redis.Client, limit int, m *metrics.Manager) *gin.Engine {
	router := gin.New()
	router.Use(RateLimiterMiddleware(rdb, limit, time.Minute, m))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "passed")
	})
	return router
}

func hit(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := setupTestRedis(t)
	ctx := context.Background()

	t.Run("Allow requests under limit", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		limit := 5
		router := limitedRouter(rdb, limit, nil)

		for i := 1; i <= limit; i++ {
			w := hit(router, "192.168.1.100")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, fmt.Sprintf("%d", limit), w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, fmt.Sprintf("%d", limit-i), w.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
		}
	})

	t.Run("Block requests over limit and count them", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		m := metrics.NewTestManager()
		router := limitedRouter(rdb, 2, m)
		ip := "192.168.1.101"

		assert.Equal(t, http.StatusOK, hit(router, ip).Code, "request 1 should pass")
		assert.Equal(t, http.StatusOK, hit(router, ip).Code, "request 2 should pass")

		w := hit(router, ip)
		assert.Equal(t, http.StatusTooManyRequests, w.Code, "request 3 should be blocked")
		assert.Contains(t, w.Body.String(), "too many requests")
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, hit(router, "192.168.1.102").Code, "other clients are unaffected")
	})

	t.Run("Window key always carries an expiry", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())
		require.NoError(t, rdb.Set(ctx, "rate_limit:192.168.1.103", 0, 0).Err())
		router := limitedRouter(rdb, 5, nil)

		assert.Equal(t, http.StatusOK, hit(router, "192.168.1.103").Code)

		ttl, err := rdb.TTL(ctx, "rate_limit:192.168.1.103").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}

func TestRateLimiterMiddleware_FailOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	badRdb := redis.NewClient(&redis.Options{
		Addr:        "localhost:9999",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer badRdb.Close()

	w := hit(limitedRouter(badRdb, 5, nil), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "passed", w.Body.String())
}
