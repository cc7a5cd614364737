package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Env:                "development",
		Port:               8080,
		StorageBackend:     config.StorageMemory,
		JWTSecret:          "e2e-secret",
		JWTIssuer:          "kanso-e2e",
		TokenTTLMinutes:    60,
		RateLimitPerMinute: 100,
		StreakQueueSize:    10,
	}
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) call(method, path string, payload any, out any) int {
	c.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, c.base+path, &body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestEndToEnd_CommitmentLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a, err := newApp(ctx, memoryConfig(), newRegistry())
	require.NoError(t, err)

	srv := httptest.NewServer(a.router)
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-a.worker.Done()
	})

	c := &client{t: t, base: srv.URL + "/api/v1"}

	t.Log("1. Register and log in")
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/auth/register", map[string]string{
		"email":    "e2e@kanso.app",
		"password": "PasswordE2E!",
	}, nil))

	var login struct {
		Token string `json:"token"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/auth/login", map[string]string{
		"email":    "e2e@kanso.app",
		"password": "PasswordE2E!",
	}, &login))
	require.NotEmpty(t, login.Token)
	c.token = login.Token

	t.Log("2. Declare 3 workouts a week for 2 weeks")
	var created struct {
		ID        string `json:"id"`
		StartDate string `json:"start_date"`
	}
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/commitments", map[string]any{
		"kind":            "workout",
		"target_per_week": 3,
		"duration_weeks":  2,
		"start_date":      "2024-01-01",
	}, &created))
	assert.Equal(t, "2024-01-01", created.StartDate)

	t.Log("3. Log activities")
	for _, d := range []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-10"} {
		require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/activities", map[string]string{
			"kind": "workout",
			"date": d,
		}, nil))
	}

	t.Log("4. Read progress")
	var progress struct {
		Commitments []struct {
			CommitmentID    string `json:"commitment_id"`
			WeeklyResults   []bool `json:"weekly_results"`
			OverallProgress int    `json:"overall_progress"`
		} `json:"commitments"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/commitments/progress?date=2024-01-10", nil, &progress))
	require.Len(t, progress.Commitments, 1)
	assert.Equal(t, created.ID, progress.Commitments[0].CommitmentID)
	assert.Equal(t, []bool{true, false}, progress.Commitments[0].WeeklyResults)
	assert.Equal(t, 50, progress.Commitments[0].OverallProgress)

	t.Log("5. Streak and dashboard agree")
	var streak struct {
		Current int `json:"current"`
		Longest int `json:"longest"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/streaks?kind=workout&date=2024-01-04", nil, &streak))
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)

	var dash struct {
		WeeklyCounts map[string]int `json:"weekly_counts"`
		TotalXP      int            `json:"total_xp"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/dashboard?date=2024-01-04", nil, &dash))
	assert.Equal(t, 3, dash.WeeklyCounts["workout"])
	assert.GreaterOrEqual(t, dash.TotalXP, 0)

	t.Log("6. Deactivate and verify it drops out of progress")
	assert.Equal(t, http.StatusNoContent, c.call(http.MethodDelete, "/commitments/"+created.ID, nil, nil))
	progress.Commitments = nil
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/commitments/progress?date=2024-01-10", nil, &progress))
	assert.Empty(t, progress.Commitments)
}

func TestNewApp_StopsWorkerOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a, err := newApp(ctx, memoryConfig(), newRegistry())
	require.NoError(t, err)

	cancel()
	select {
	case <-a.worker.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("streak worker did not stop")
	}
}
