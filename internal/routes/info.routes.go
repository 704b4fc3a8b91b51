package routes

import (
	"diskmonitor/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterInfoRoutes registers the capability description, the liveness probe
// and the OpenAPI document.
func RegisterInfoRoutes(r *gin.Engine, endpoints map[string]string, hc *controllers.HealthController) {
	r.GET("/", controllers.NewInfoHandler(endpoints))
	r.GET("/health", hc.GetHealth)
	r.GET("/openapi.json", controllers.GetOpenAPI)
}
