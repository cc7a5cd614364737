package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrInvalidTimezone,
	domain.ErrInvalidActivityKind,
	domain.ErrInvalidDate,
	domain.ErrNotesTooLong,
	domain.ErrInvalidUserID,
	domain.ErrInvalidTarget,
	domain.ErrInvalidDuration,
	domain.ErrInvalidSex,
	domain.ErrInvalidBodyMetrics,
	domain.ErrInvalidActivityLevel,
}

// handleError maps domain sentinels to status codes. Anything unknown is
// attached to the gin context for logging and reported as a 500.
func handleError(c *gin.Context, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
	case errors.Is(err, domain.ErrCommitmentInactive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrCommitmentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
	}
	return userID, ok
}

// queryDay reads a YYYY-MM-DD query parameter. The zero time means "not set".
func queryDay(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	return domain.ParseDay(raw)
}

// requestDay resolves the calendar day a read endpoint works on: the explicit
// ?date= when given, otherwise today in ?tz=, falling back to the caller's
// stored timezone.
func requestDay(c *gin.Context, now time.Time) (time.Time, error) {
	day, err := queryDay(c, "date")
	if err != nil || !day.IsZero() {
		return day, err
	}

	loc, err := callerLocation(c, c.Query("tz"))
	if err != nil {
		return time.Time{}, err
	}
	return domain.Today(now, loc), nil
}

// callerLocation prefers an explicit zone name over the stored one.
func callerLocation(c *gin.Context, override string) (*time.Location, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return middleware.GetUserLocation(c), nil
	}
	loc, err := time.LoadLocation(override)
	if err != nil {
		return nil, domain.ErrInvalidTimezone
	}
	return loc, nil
}
