package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	Host     string
	Port     int
	Password string
	DB       int

	// ConnectAttempts bounds the startup ping loop; values below 1 mean a single try.
	ConnectAttempts int
	RetryDelay      time.Duration
}

func (o Options) addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// NewRedisClient connects and pings until the server answers or the attempts
// run out. Redis often comes up after the API under docker compose.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.addr(),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	attempts := max(opts.ConnectAttempts, 1)
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var err error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return rdb, nil
		}
		if i == attempts {
			break
		}

		log.WithError(err).WithField("attempt", i).Debug("redis not ready, retrying")
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.addr(), err)
}
