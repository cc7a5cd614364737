package services_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, record *domain.ActivityRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockActivityRepo) GetByID(ctx context.Context, id string) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *MockActivityRepo) Delete(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockActivityRepo) ListByUserAndKind(ctx context.Context, userID string, kind domain.ActivityKind, from, to time.Time) ([]*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, kind, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityRecord), args.Error(1)
}

type MockCommitmentRepo struct {
	mock.Mock
}

func (m *MockCommitmentRepo) Create(ctx context.Context, c *domain.Commitment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommitmentRepo) GetByID(ctx context.Context, id string) (*domain.Commitment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commitment), args.Error(1)
}

func (m *MockCommitmentRepo) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Commitment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Commitment), args.Error(1)
}

func (m *MockCommitmentRepo) Deactivate(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockStreakCache struct {
	mock.Mock
}

func (m *MockStreakCache) Get(ctx context.Context, userID string, kind domain.ActivityKind, day time.Time) (*domain.StreakState, bool, error) {
	args := m.Called(ctx, userID, kind, day)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.StreakState), args.Bool(1), args.Error(2)
}

func (m *MockStreakCache) Set(ctx context.Context, userID string, kind domain.ActivityKind, day time.Time, state domain.StreakState) error {
	args := m.Called(ctx, userID, kind, day, state)
	return args.Error(0)
}

func (m *MockStreakCache) Invalidate(ctx context.Context, userID string, kind domain.ActivityKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

// mapStreakCache is a working in-process StreakCache.
type mapStreakCache struct {
	mu      sync.Mutex
	entries map[string]domain.StreakState
}

func newMapStreakCache() *mapStreakCache {
	return &mapStreakCache{entries: make(map[string]domain.StreakState)}
}

func mapStreakKey(userID string, kind domain.ActivityKind) string {
	return userID + "/" + kind.String() + "/"
}

func (c *mapStreakCache) Get(_ context.Context, userID string, kind domain.ActivityKind, day time.Time) (*domain.StreakState, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.entries[mapStreakKey(userID, kind)+domain.FormatDay(day)]
	if !ok {
		return nil, false, nil
	}
	return &st, true, nil
}

func (c *mapStreakCache) Set(_ context.Context, userID string, kind domain.ActivityKind, day time.Time, state domain.StreakState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[mapStreakKey(userID, kind)+domain.FormatDay(day)] = state
	return nil
}

func (c *mapStreakCache) Invalidate(_ context.Context, userID string, kind domain.ActivityKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := mapStreakKey(userID, kind)
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) GenerateToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// recordingEnqueuer captures streak jobs instead of running a worker.
type recordingEnqueuer struct {
	mu   sync.Mutex
	jobs []string
}

func (r *recordingEnqueuer) Enqueue(userID string, kind domain.ActivityKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, userID+"/"+kind.String())
}

func (r *recordingEnqueuer) Jobs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.jobs...)
}

func mustDay(s string) time.Time {
	d, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}
