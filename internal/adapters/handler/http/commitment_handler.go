package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type CommitmentHandler struct {
	svc *services.CommitmentService
	now func() time.Time
}

func NewCommitmentHandler(svc *services.CommitmentService) *CommitmentHandler {
	return &CommitmentHandler{
		svc: svc,
		now: time.Now,
	}
}

type createCommitmentRequest struct {
	Kind          string `json:"kind" binding:"required"`
	TargetPerWeek int    `json:"target_per_week" binding:"required"`
	DurationWeeks int    `json:"duration_weeks" binding:"required"`
	// StartDate defaults to today in the user's zone; it is moved back to its Monday.
	StartDate string `json:"start_date"`
}

type commitmentResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	TargetPerWeek int    `json:"target_per_week"`
	DurationWeeks int    `json:"duration_weeks"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Active        bool   `json:"active"`
}

func toCommitmentResponse(c *domain.Commitment) commitmentResponse {
	return commitmentResponse{
		ID:            c.ID,
		Kind:          c.Kind.String(),
		TargetPerWeek: c.TargetPerWeek,
		DurationWeeks: c.DurationWeeks,
		StartDate:     domain.FormatDay(c.StartDate),
		EndDate:       domain.FormatDay(c.StartDate.AddDate(0, 0, 7*c.DurationWeeks-1)),
		Active:        c.Active,
	}
}

func (h *CommitmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	commitments := router.Group("/commitments")
	{
		commitments.POST("", h.Create)
		commitments.GET("", h.List)
		commitments.GET("/progress", h.Progress)
		commitments.DELETE("/:id", h.Deactivate)
	}
}

// Create godoc
// @Summary  Declare a weekly goal
// @Tags     commitments
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Success  201 {object} commitmentResponse
// @Router   /commitments [post]
func (h *CommitmentHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := domain.Today(h.now(), middleware.GetUserLocation(c))
	if req.StartDate != "" {
		var err error
		if start, err = domain.ParseDay(req.StartDate); err != nil {
			handleError(c, err)
			return
		}
	}

	commitment, err := h.svc.Create(c.Request.Context(), services.CreateCommitmentInput{
		UserID:        userID,
		Kind:          req.Kind,
		TargetPerWeek: req.TargetPerWeek,
		DurationWeeks: req.DurationWeeks,
		StartDate:     start,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommitmentResponse(commitment))
}

func (h *CommitmentHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]commitmentResponse, 0, len(list))
	for _, cm := range list {
		out = append(out, toCommitmentResponse(cm))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommitmentHandler) Deactivate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Progress godoc
// @Summary  Week-by-week progress of every active commitment
// @Tags     commitments
// @Security BearerAuth
// @Produce  json
// @Param    date query string false "evaluation day (YYYY-MM-DD)"
// @Param    tz   query string false "IANA zone used when date is omitted"
// @Success  200 {array} domain.CommitmentProgress
// @Router   /commitments/progress [get]
func (h *CommitmentHandler) Progress(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	day, err := requestDay(c, h.now())
	if err != nil {
		handleError(c, err)
		return
	}

	progress, err := h.svc.Progress(c.Request.Context(), userID, day)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        domain.FormatDay(day),
		"commitments": progress,
	})
}
