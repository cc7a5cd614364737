package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type ActivityHandler struct {
	svc *services.ActivityService
	now func() time.Time
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
		now: time.Now,
	}
}

type logActivityRequest struct {
	Kind string `json:"kind" binding:"required"`
	// Date is YYYY-MM-DD; empty means today in Timezone, or in the user's zone.
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Notes    string `json:"notes"`
}

type activityResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func toActivityResponse(r *domain.ActivityRecord) activityResponse {
	return activityResponse{
		ID:        r.ID,
		Kind:      r.Kind.String(),
		Date:      domain.FormatDay(r.Date),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	{
		activities.POST("", h.Log)
		activities.GET("", h.List)
		activities.DELETE("/:id", h.Delete)
	}
}

// Log godoc
// @Summary  Record a workout, gym check-in or meal
// @Tags     activities
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Success  201 {object} activityResponse
// @Router   /activities [post]
func (h *ActivityHandler) Log(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := h.activityDate(c, req)
	if err != nil {
		handleError(c, err)
		return
	}

	record, err := h.svc.Log(c.Request.Context(), services.LogActivityInput{
		UserID: userID,
		Kind:   req.Kind,
		Date:   date,
		Notes:  req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toActivityResponse(record))
}

func (h *ActivityHandler) activityDate(c *gin.Context, req logActivityRequest) (time.Time, error) {
	if req.Date != "" {
		return domain.ParseDay(req.Date)
	}
	loc, err := callerLocation(c, req.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return domain.Today(h.now(), loc), nil
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	from, err := queryDay(c, "from")
	if err != nil {
		handleError(c, err)
		return
	}
	to, err := queryDay(c, "to")
	if err != nil {
		handleError(c, err)
		return
	}

	records, err := h.svc.List(c.Request.Context(), services.ListActivitiesInput{
		UserID: userID,
		Kind:   c.Query("kind"),
		From:   from,
		To:     to,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]activityResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toActivityResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
