package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const ContextUserLocationKey = "userLocation"

type LocationResolver interface {
	UserLocation(ctx context.Context, userID string) (*time.Location, error)
}

// UserLocation stores the caller's zone in the context. It must run after
// AuthMiddleware.
func UserLocation(zones LocationResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Next()
			return
		}

		loc, err := zones.UserLocation(c.Request.Context(), userID)
		if errors.Is(err, domain.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("resolving user timezone")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(ContextUserLocationKey, loc)
		c.Next()
	}
}

// GetUserLocation falls back to UTC when no zone was resolved.
func GetUserLocation(c *gin.Context) *time.Location {
	v, exists := c.Get(ContextUserLocationKey)
	if !exists {
		return time.UTC
	}
	loc, ok := v.(*time.Location)
	if !ok || loc == nil {
		return time.UTC
	}
	return loc
}
