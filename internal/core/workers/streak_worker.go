package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type StreakRefresher interface {
	Refresh(ctx context.Context, userID string, kind domain.ActivityKind, today time.Time) (domain.StreakState, error)
}

type StreakJob struct {
	UserID string
	Kind   domain.ActivityKind
}

// StreakWorker warms the streak cache off the request path after activity writes.
// "Today" is resolved per job in the user's timezone at processing time.
type StreakWorker struct {
	users     UserRepository
	refresher StreakRefresher
	metrics   *metrics.Manager
	jobs      chan StreakJob
	now       func() time.Time

	startOnce sync.Once
	done      chan struct{}
}

func NewStreakWorker(users UserRepository, refresher StreakRefresher, queueSize int, m *metrics.Manager) *StreakWorker {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &StreakWorker{
		users:     users,
		refresher: refresher,
		metrics:   m,
		jobs:      make(chan StreakJob, queueSize),
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start launches the processing loop. It returns immediately; the loop exits
// when ctx is cancelled, after which Done is closed. Jobs still queued at that
// point are discarded.
func (w *StreakWorker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go w.run(ctx)
	})
}

func (w *StreakWorker) Done() <-chan struct{} {
	return w.done
}

func (w *StreakWorker) run(ctx context.Context) {
	defer close(w.done)

	logrus.Info("streak worker started")
	for {
		select {
		case job := <-w.jobs:
			w.observeQueue()
			w.processJob(ctx, job)
		case <-ctx.Done():
			logrus.Info("streak worker shutting down")
			return
		}
	}
}

// Enqueue never blocks: when the queue is full the job is dropped. The write
// path has already invalidated the cache, so the next read recomputes.
func (w *StreakWorker) Enqueue(userID string, kind domain.ActivityKind) {
	select {
	case w.jobs <- StreakJob{UserID: userID, Kind: kind}:
		w.observeQueue()
	default:
		w.metrics.StreakJob("dropped")
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"kind":    kind,
		}).Warn("streak worker queue full, dropping job")
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"user_id": job.UserID,
		"kind":    job.Kind,
	})

	loc := time.UTC
	if w.users != nil {
		user, err := w.users.GetByID(ctx, job.UserID)
		if err != nil {
			w.metrics.StreakJob("failed")
			log.WithError(err).Error("streak worker: failed to load user")
			return
		}
		loc = user.Location()
	}

	today := domain.Today(w.now(), loc)
	state, err := w.refresher.Refresh(ctx, job.UserID, job.Kind, today)
	if err != nil {
		w.metrics.StreakJob("failed")
		log.WithError(err).Error("streak worker: failed to refresh streak")
		return
	}

	w.metrics.StreakJob("processed")
	if w.metrics != nil {
		w.metrics.HistStreakJob.Observe(time.Since(start).Seconds())
	}
	log.WithFields(logrus.Fields{
		"current": state.Current,
		"longest": state.Longest,
	}).Debug("streak refreshed")
}

func (w *StreakWorker) observeQueue() {
	if w.metrics != nil {
		w.metrics.GaugeStreakQueueLen.Set(float64(len(w.jobs)))
	}
}
