package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type stubZones map[string]string

func (z stubZones) UserLocation(_ context.Context, userID string) (*time.Location, error) {
	name, ok := z[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if name == "broken" {
		return nil, errors.New("db down")
	}
	return time.LoadLocation(name)
}

func locationRouter(zones LocationResolver, userID string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	})
	router.Use(UserLocation(zones))
	router.GET("/zone", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserLocation(c).String())
	})
	return router
}

func TestUserLocation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	zones := stubZones{"tokyo": "Asia/Tokyo", "flaky": "broken"}

	tests := []struct {
		name     string
		userID   string
		wantCode int
		wantBody string
	}{
		{"Stored zone", "tokyo", http.StatusOK, "Asia/Tokyo"},
		{"Anonymous request keeps UTC", "", http.StatusOK, "UTC"},
		{"Deleted user", "ghost", http.StatusUnauthorized, "invalid or expired token"},
		{"Lookup failure", "flaky", http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			locationRouter(zones, tt.userID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zone", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestGetUserLocation_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, time.UTC, GetUserLocation(c))

	c.Set(ContextUserLocationKey, "Asia/Tokyo")
	assert.Equal(t, time.UTC, GetUserLocation(c))
}
