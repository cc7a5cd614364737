package main

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-fit/internal/config"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type storage struct {
	users       domain.UserRepository
	activities  domain.ActivityRepository
	commitments domain.CommitmentRepository
	streaks     domain.StreakCache

	// nil when the backend does not use them
	db  *sqlx.DB
	rdb *redis.Client
}

func (s *storage) Close() {
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.WithError(err).Warn("closing redis client")
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	s := &storage{}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		s.users = repository.NewInMemoryUserRepository()
		s.activities = repository.NewInMemoryActivityRepository()
		s.commitments = repository.NewInMemoryCommitmentRepository()
	case config.StoragePostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("database connected and migrated")

		s.db = db
		s.users = repository.NewPostgresUserRepository(db)
		s.activities = repository.NewPostgresActivityRepository(db)
		s.commitments = repository.NewPostgresCommitmentRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if !cfg.RedisEnabled() {
		log.Info("redis disabled, running without cache and rate limiting")
		return s, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cache.Options{
		Host:            cfg.RedisHost,
		Port:            cfg.RedisPort,
		Password:        cfg.RedisPassword,
		DB:              cfg.RedisDB,
		ConnectAttempts: 5,
	})
	if err != nil {
		// fail open: cache and rate limiter are optional
		log.WithError(err).Warn("redis unreachable, running without cache and rate limiting")
		return s, nil
	}

	s.rdb = rdb
	s.commitments = repository.NewCachedCommitmentRepository(s.commitments, rdb)
	s.streaks = cache.NewRedisStreakCache(rdb)
	return s, nil
}
