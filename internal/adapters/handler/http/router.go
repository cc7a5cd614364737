package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kanso-fit/docs"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterDependencies struct {
	AuthHandler       *AuthHandler
	ActivityHandler   *ActivityHandler
	CommitmentHandler *CommitmentHandler
	StreakHandler     *StreakHandler
	DashboardHandler  *DashboardHandler
	EnergyHandler     *EnergyHandler
	Tokens            middleware.TokenValidator
	// Zones resolves the caller's timezone; nil means every user is on UTC.
	Zones middleware.LocationResolver

	// DB and Redis are optional; nil means the backend is not configured.
	DB    Pinger
	Redis *redis.Client

	Metrics            *metrics.Manager
	Gatherer           prometheus.Gatherer
	RateLimitPerMinute int
	StartTime          time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.PanicRecovery(deps.Metrics),
		middleware.RequestLogger(),
		middleware.CORS(),
		middleware.RequestMetrics(deps.Metrics),
	)

	if deps.Redis != nil && deps.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimitPerMinute, time.Minute, deps.Metrics))
	}

	router.GET("/health", healthHandler(deps))
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)
	deps.EnergyHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	if deps.Zones != nil {
		protected.Use(middleware.UserLocation(deps.Zones))
	}
	{
		deps.ActivityHandler.RegisterRoutes(protected)
		deps.CommitmentHandler.RegisterRoutes(protected)
		deps.StreakHandler.RegisterRoutes(protected)
		deps.DashboardHandler.RegisterRoutes(protected)
	}

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		healthy := true
		status := func(configured bool, ping func() error) string {
			if !configured {
				return "disabled"
			}
			if err := ping(); err != nil {
				healthy = false
				return "unreachable"
			}
			return "connected"
		}

		dbStatus := status(deps.DB != nil, func() error { return deps.DB.PingContext(ctx) })
		redisStatus := status(deps.Redis != nil, func() error { return deps.Redis.Ping(ctx).Err() })

		code, overall := http.StatusOK, "ok"
		if !healthy {
			code, overall = http.StatusServiceUnavailable, "degraded"
		}

		c.JSON(code, gin.H{
			"status":   overall,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
