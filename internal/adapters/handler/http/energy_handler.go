package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
)

// EnergyHandler is stateless; estimates are computed from the request body alone.
type EnergyHandler struct{}

func NewEnergyHandler() *EnergyHandler {
	return &EnergyHandler{}
}

func (h *EnergyHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/energy/estimate", h.Estimate)
}

// Estimate godoc
// @Summary  Basal and total daily energy expenditure
// @Tags     energy
// @Accept   json
// @Produce  json
// @Param    profile body domain.EnergyProfile true "body metrics"
// @Success  200 {object} domain.EnergyEstimate
// @Router   /energy/estimate [post]
func (h *EnergyHandler) Estimate(c *gin.Context) {
	var profile domain.EnergyProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := progress.EstimateEnergy(profile)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}
