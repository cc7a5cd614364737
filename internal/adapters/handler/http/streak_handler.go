package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type StreakHandler struct {
	svc *services.StreakService
	now func() time.Time
}

func NewStreakHandler(svc *services.StreakService) *StreakHandler {
	return &StreakHandler{
		svc: svc,
		now: time.Now,
	}
}

func (h *StreakHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/streaks", h.Get)
}

// Get returns one kind's streak when ?kind= is set, otherwise all of them.
func (h *StreakHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, err := requestDay(c, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		kind, err := domain.ParseActivityKind(raw)
		if err != nil {
			handleError(c, err)
			return
		}
		st, err := h.svc.Get(c.Request.Context(), userID, kind, day)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"date":    domain.FormatDay(day),
			"kind":    kind,
			"current": st.Current,
			"longest": st.Longest,
		})
		return
	}

	all, err := h.svc.GetAll(c.Request.Context(), userID, day)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    domain.FormatDay(day),
		"streaks": all,
	})
}
