package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.StreakCache = (*RedisStreakCache)(nil)

// Entries are keyed by calendar day, so yesterday's value can never answer
// for today. The TTL only bounds memory.
const streakTTL = 48 * time.Hour

type RedisStreakCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStreakCache(rdb *redis.Client) *RedisStreakCache {
	return &RedisStreakCache{rdb: rdb, ttl: streakTTL}
}

func streakKey(userID string, kind domain.ActivityKind, day time.Time) string {
	return fmt.Sprintf("streak:%s:%s:%s", userID, kind, domain.FormatDay(day))
}

func (c *RedisStreakCache) Get(ctx context.Context, userID string, kind domain.ActivityKind, day time.Time) (*domain.StreakState, bool, error) {
	val, err := c.rdb.Get(ctx, streakKey(userID, kind, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("streak cache: get: %w", err)
	}

	var st domain.StreakState
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, false, fmt.Errorf("streak cache: corrupted entry: %w", err)
	}
	return &st, true, nil
}

func (c *RedisStreakCache) Set(ctx context.Context, userID string, kind domain.ActivityKind, day time.Time, state domain.StreakState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, streakKey(userID, kind, day), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("streak cache: set: %w", err)
	}
	return nil
}

func (c *RedisStreakCache) Invalidate(ctx context.Context, userID string, kind domain.ActivityKind) error {
	pattern := fmt.Sprintf("streak:%s:%s:*", userID, kind)

	var keys []string
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("streak cache: scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("streak cache: invalidate: %w", err)
	}
	return nil
}
