package controllers

import (
	"context"
	"net/http"
	"strings"

	"diskmonitor/internal/models"

	"github.com/gin-gonic/gin"
)

// NotFoundDetail is the 404 message for a path that could not be resolved
const NotFoundDetail = "No se pudo obtener información del disco en la ruta: "

// DiskResolver resolves paths to capacity snapshots
type DiskResolver interface {
	Resolve(ctx context.Context, path string) (models.DiskInfo, bool)
	ResolveAll(ctx context.Context) []models.DiskInfo
}

// DiskController serves the /disks endpoints
type DiskController struct {
	resolver DiskResolver
}

// NewDiskController creates a DiskController
func NewDiskController(resolver DiskResolver) *DiskController {
	return &DiskController{resolver: resolver}
}

// GetDiskByPath returns usage for the volume containing the catch-all path
func (dc *DiskController) GetDiskByPath(c *gin.Context) {
	path := NormalizeDiskPath(c.Param("path"))

	info, ok := dc.resolver.Resolve(c.Request.Context(), path)
	if !ok {
		respondWithDetail(c, http.StatusNotFound, NotFoundDetail+path)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetAllDisks returns usage for every mounted partition
func (dc *DiskController) GetAllDisks(c *gin.Context) {
	c.JSON(http.StatusOK, dc.resolver.ResolveAll(c.Request.Context()))
}

// NormalizeDiskPath turns a gin catch-all value into an absolute path.
// gin keeps the separator before the wildcard, so "/disks/path/foo" yields
// "/foo" and "/disks/path//foo" yields "//foo"; both map to "/foo".
func NormalizeDiskPath(param string) string {
	path := strings.TrimPrefix(param, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func respondWithDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, models.ErrorDetail{Detail: detail})
}
