package controllers

import (
	"maps"
	"net/http"

	"diskmonitor/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	APIName    = "Disk Monitor API"
	APIVersion = "1.0.0"
)

// DefaultEndpoints is the capability map returned by GET /
func DefaultEndpoints(metricsEnabled bool) map[string]string {
	endpoints := map[string]string{
		"/disks/path/{disk_path}": "Obtener información de un disco específico",
		"/disks":                  "Obtener información de todos los discos montados",
		"/health":                 "Estado de salud de la API",
		"/openapi.json":           "Documento OpenAPI de la API",
	}
	if metricsEnabled {
		endpoints["/metrics"] = "Métricas en formato Prometheus"
	}
	return endpoints
}

// NewInfoHandler returns the static capability description handler
func NewInfoHandler(endpoints map[string]string) gin.HandlerFunc {
	info := models.APIInfo{
		Message:   APIName,
		Version:   APIVersion,
		Endpoints: maps.Clone(endpoints),
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
