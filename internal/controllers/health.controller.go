package controllers

import (
	"net/http"

	"diskmonitor/internal/services"

	"github.com/gin-gonic/gin"
)

// HealthController serves the liveness probe
type HealthController struct {
	health *services.HealthService
}

func NewHealthController(health *services.HealthService) *HealthController {
	return &HealthController{health: health}
}

// GetHealth always succeeds
func (hc *HealthController) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, hc.health.Status())
}
