package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.CommitmentRepository = (*CachedCommitmentRepository)(nil)

const commitmentCacheTTL = 30 * time.Minute

// CachedCommitmentRepository caches each user's active commitments in Redis.
// Every write through it drops the user's entry; Redis failures fall through
// to the wrapped repository.
type CachedCommitmentRepository struct {
	next  domain.CommitmentRepository
	cache *redis.Client
}

func NewCachedCommitmentRepository(next domain.CommitmentRepository, cache *redis.Client) *CachedCommitmentRepository {
	return &CachedCommitmentRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedCommitmentRepository) cacheKey(userID string) string {
	return fmt.Sprintf("commitments:active:%s", userID)
}

func (r *CachedCommitmentRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("commitment cache: invalidate failed")
	}
}

func (r *CachedCommitmentRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Commitment, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var list []*domain.Commitment
		if err := json.Unmarshal(val, &list); err == nil {
			return list, nil
		}

		logrus.WithField("user_id", userID).Warn("commitment cache: corrupted entry, cleaning up key")
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		logrus.WithError(err).Warn("commitment cache: redis read error")
	}

	list, err := r.next.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(list); err == nil {
		if setErr := r.cache.Set(ctx, key, data, commitmentCacheTTL).Err(); setErr != nil {
			logrus.WithError(setErr).Warn("commitment cache: redis set error")
		}
	}

	return list, nil
}

func (r *CachedCommitmentRepository) GetByID(ctx context.Context, id string) (*domain.Commitment, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedCommitmentRepository) Create(ctx context.Context, c *domain.Commitment) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.UserID)
	return nil
}

func (r *CachedCommitmentRepository) Deactivate(ctx context.Context, id string, userID string) error {
	if err := r.next.Deactivate(ctx, id, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
