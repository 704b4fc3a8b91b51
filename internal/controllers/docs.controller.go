package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var diskInfoSchema = gin.H{
	"type":     "object",
	"required": []string{"path", "total_gb", "used_gb", "free_gb", "usage_percent"},
	"properties": gin.H{
		"path":          gin.H{"type": "string"},
		"total_gb":      gin.H{"type": "number"},
		"used_gb":       gin.H{"type": "number"},
		"free_gb":       gin.H{"type": "number"},
		"usage_percent": gin.H{"type": "number", "minimum": 0, "maximum": 100},
	},
}

var healthSchema = gin.H{
	"type":     "object",
	"required": []string{"status", "timestamp", "uptime_seconds"},
	"properties": gin.H{
		"status":         gin.H{"type": "string", "enum": []string{"healthy"}},
		"timestamp":      gin.H{"type": "string", "example": "2025-01-31 13:45:10"},
		"uptime_seconds": gin.H{"type": "number", "minimum": 0},
	},
}

var errorSchema = gin.H{
	"type":       "object",
	"properties": gin.H{"detail": gin.H{"type": "string"}},
}

func jsonResponse(description string, schema gin.H) gin.H {
	return gin.H{
		"description": description,
		"content":     gin.H{"application/json": gin.H{"schema": schema}},
	}
}

// OpenAPIDocument describes the HTTP API as an OpenAPI 3 document
func OpenAPIDocument() gin.H {
	return gin.H{
		"openapi": "3.0.3",
		"info": gin.H{
			"title":       APIName,
			"description": "API para monitoreo de espacio en disco en tiempo real",
			"version":     APIVersion,
		},
		"paths": gin.H{
			"/": gin.H{"get": gin.H{
				"tags":      []string{"Info"},
				"summary":   "Información básica de la API",
				"responses": gin.H{"200": gin.H{"description": "OK"}},
			}},
			"/health": gin.H{"get": gin.H{
				"tags":      []string{"Health"},
				"summary":   "Estado de salud de la API",
				"responses": gin.H{"200": jsonResponse("OK", healthSchema)},
			}},
			"/disks": gin.H{"get": gin.H{
				"tags":    []string{"Disks"},
				"summary": "Información de todos los discos montados",
				"responses": gin.H{"200": jsonResponse("OK", gin.H{
					"type":  "array",
					"items": diskInfoSchema,
				})},
			}},
			"/disks/path/{disk_path}": gin.H{"get": gin.H{
				"tags":    []string{"Disks"},
				"summary": "Información de uso de disco para una ruta específica",
				"parameters": []gin.H{{
					"name":     "disk_path",
					"in":       "path",
					"required": true,
					"schema":   gin.H{"type": "string"},
				}},
				"responses": gin.H{
					"200": jsonResponse("OK", diskInfoSchema),
					"404": jsonResponse("No se pudo obtener información del disco", errorSchema),
				},
			}},
		},
	}
}

// GetOpenAPI serves the OpenAPI document
func GetOpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, OpenAPIDocument())
}
