package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestManager_Helpers(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.StreakJob("processed")
	m.StreakJob("processed")
	m.StreakJob("dropped")
	m.StreakCacheLookup(true)
	m.StreakCacheLookup(false)
	m.StreakCacheLookup(false)
	m.ActivityLogged("workout")
	m.RateLimited()

	assert.Equal(t, 2.0, value(t, m.CounterStreakJobs.WithLabelValues("processed")))
	assert.Equal(t, 1.0, value(t, m.CounterStreakJobs.WithLabelValues("dropped")))
	assert.Equal(t, 1.0, value(t, m.CounterStreakCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, value(t, m.CounterStreakCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, value(t, m.CounterActivities.WithLabelValues("workout")))
	assert.Equal(t, 1.0, value(t, m.CounterRateLimited))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestManager_NilIsSafe(t *testing.T) {
	var m *Manager

	assert.NotPanics(t, func() {
		m.StreakJob("processed")
		m.StreakCacheLookup(true)
		m.ActivityLogged("meal")
		m.RateLimited()
	})
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}
