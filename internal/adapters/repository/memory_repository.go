package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// In-memory repositories back STORAGE_BACKEND=memory and the HTTP tests.
// Stored values are copied on the way in and out so callers cannot mutate them.

type InMemoryUserRepository struct {
	byID    map[string]domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type InMemoryActivityRepository struct {
	store map[string]domain.ActivityRecord

	mu sync.RWMutex
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		store: make(map[string]domain.ActivityRecord),
	}
}

func (r *InMemoryActivityRepository) Create(ctx context.Context, record *domain.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	r.store[record.ID] = *record
	return nil
}

func (r *InMemoryActivityRepository) GetByID(ctx context.Context, id string) (*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.store[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	return &rec, nil
}

func (r *InMemoryActivityRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.store[id]
	if !ok || rec.UserID != userID {
		return domain.ErrActivityNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *InMemoryActivityRepository) ListByUserAndKind(ctx context.Context, userID string, kind domain.ActivityKind, from, to time.Time) ([]*domain.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from, to = dayOrZero(from), dayOrZero(to)

	out := []*domain.ActivityRecord{}
	for _, rec := range r.store {
		if rec.UserID != userID || rec.Kind != kind {
			continue
		}
		if !from.IsZero() && rec.Date.Before(from) {
			continue
		}
		if !to.IsZero() && rec.Date.After(to) {
			continue
		}
		rec := rec
		out = append(out, &rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type InMemoryCommitmentRepository struct {
	store map[string]domain.Commitment

	mu sync.RWMutex
}

func NewInMemoryCommitmentRepository() *InMemoryCommitmentRepository {
	return &InMemoryCommitmentRepository{
		store: make(map[string]domain.Commitment),
	}
}

func (r *InMemoryCommitmentRepository) Create(ctx context.Context, c *domain.Commitment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[c.ID] = *c
	return nil
}

func (r *InMemoryCommitmentRepository) GetByID(ctx context.Context, id string) (*domain.Commitment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCommitmentNotFound
	}
	return &c, nil
}

func (r *InMemoryCommitmentRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Commitment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Commitment{}
	for _, c := range r.store {
		if c.UserID == userID && c.Active {
			c := c
			out = append(out, &c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryCommitmentRepository) Deactivate(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.store[id]
	if !ok || c.UserID != userID {
		return domain.ErrCommitmentNotFound
	}
	if !c.Active {
		return domain.ErrCommitmentInactive
	}
	c.Deactivate()
	r.store[id] = c
	return nil
}

func dayOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return domain.Day(t)
}
