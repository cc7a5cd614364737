package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests      *prometheus.CounterVec
	CounterStreakJobs    *prometheus.CounterVec
	CounterStreakCache   *prometheus.CounterVec
	CounterActivities    *prometheus.CounterVec
	CounterRateLimited   prometheus.Counter
	CounterRequestPanics prometheus.Counter

	// gauges
	GaugeRequests       prometheus.Gauge
	GaugeStreakQueueLen prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
	HistStreakJob       prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("kanso", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("kanso", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterStreakJobs := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "streak_jobs",
		Help:      "Streak recomputation jobs by outcome",
	}, []string{"outcome"})
	counterStreakCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "streak_cache_lookups",
		Help:      "Streak cache lookups by result",
	}, []string{"result"})
	counterActivities := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "activities_logged",
		Help:      "The total number of logged activity records",
	}, []string{"kind"})
	counterRateLimited := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited",
		Help:      "Requests rejected by the rate limiter",
	})
	counterRequestPanics := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeStreakQueueLen := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "streak_queue_length",
		Help:      "Jobs waiting in the streak worker queue",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"route"},
	)
	histStreakJob := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			Name:      "streak_job_duration_seconds",
			Help:      "Duration of a single streak recomputation in seconds",
		},
	)

	return &Manager{
		CounterRequests:      counterRequests,
		CounterStreakJobs:    counterStreakJobs,
		CounterStreakCache:   counterStreakCache,
		CounterActivities:    counterActivities,
		CounterRateLimited:   counterRateLimited,
		CounterRequestPanics: counterRequestPanics,
		GaugeRequests:        gaugeRequests,
		GaugeStreakQueueLen:  gaugeStreakQueueLen,
		HistRequestDuration:  histReqDuration,
		HistStreakJob:        histStreakJob,
	}
}

// The helpers below accept a nil receiver so components can run without metrics.

func (m *Manager) StreakJob(outcome string) {
	if m == nil {
		return
	}
	m.CounterStreakJobs.WithLabelValues(outcome).Inc()
}

func (m *Manager) StreakCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CounterStreakCache.WithLabelValues(result).Inc()
}

func (m *Manager) ActivityLogged(kind string) {
	if m == nil {
		return
	}
	m.CounterActivities.WithLabelValues(kind).Inc()
}

func (m *Manager) RateLimited() {
	if m == nil {
		return
	}
	m.CounterRateLimited.Inc()
}

func (m *Manager) RequestPanic() {
	if m == nil {
		return
	}
	m.CounterRequestPanics.Inc()
}
