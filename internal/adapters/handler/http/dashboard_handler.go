package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
	now func() time.Time
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
		now: time.Now,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Get)
}

// Get godoc
// @Summary  Weekly counts, streaks, commitment progress, achievements and level
// @Tags     dashboard
// @Security BearerAuth
// @Produce  json
// @Param    date query string false "day to report on (YYYY-MM-DD)"
// @Param    tz   query string false "IANA zone used when date is omitted"
// @Success  200 {object} domain.Dashboard
// @Router   /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, err := requestDay(c, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	dash, err := h.svc.Get(c.Request.Context(), domain.DashboardInput{
		UserID: userID,
		Today:  day,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
