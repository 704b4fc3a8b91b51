package routes

import (
	"diskmonitor/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterDiskRoutes(r *gin.Engine, dc *controllers.DiskController) {
	disks := r.Group("/disks")
	{
		disks.GET("", dc.GetAllDisks)
		disks.GET("/path/*path", dc.GetDiskByPath)
	}
}
