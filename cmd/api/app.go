package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	adapterHTTP "github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-fit/internal/config"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
	"github.com/comitanigiacomo/kanso-fit/internal/core/workers"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

const devJWTSecret = "kanso-dev-secret-change-me"

type app struct {
	router  *gin.Engine
	worker  *workers.StreakWorker
	storage *storage
}

// newApp wires storage, services, the streak worker and the router. The
// worker is started with ctx and stops when ctx is cancelled.
func newApp(ctx context.Context, cfg *config.Config, reg *prometheus.Registry) (*app, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.NewManager("kanso", "api", reg)

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set, using the development secret")
		secret = devJWTSecret
	}
	tokens := services.NewTokenService(secret, cfg.JWTIssuer, time.Duration(cfg.TokenTTLMinutes)*time.Minute, store.users)

	streaks := services.NewStreakService(store.activities, store.streaks, m)
	worker := workers.NewStreakWorker(store.users, streaks, cfg.StreakQueueSize, m)
	worker.Start(ctx)

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(services.NewAuthService(store.users, tokens)),
		ActivityHandler:    adapterHTTP.NewActivityHandler(services.NewActivityService(store.activities, streaks, worker, m)),
		CommitmentHandler:  adapterHTTP.NewCommitmentHandler(services.NewCommitmentService(store.commitments, store.activities)),
		StreakHandler:      adapterHTTP.NewStreakHandler(streaks),
		DashboardHandler:   adapterHTTP.NewDashboardHandler(services.NewDashboardService(store.activities, store.commitments)),
		EnergyHandler:      adapterHTTP.NewEnergyHandler(),
		Tokens:             tokens,
		Zones:              services.NewUserService(store.users),
		Redis:              store.rdb,
		Metrics:            m,
		Gatherer:           reg,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		StartTime:          time.Now(),
	}
	if store.db != nil {
		deps.DB = store.db
	}

	return &app{
		router:  adapterHTTP.NewRouter(deps),
		worker:  worker,
		storage: store,
	}, nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
