package routes

import (
	"shoguntrade/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSystemConfigRoutes sets up system settings and the audit log
func SetupSystemConfigRoutes(r *gin.RouterGroup) {
	r.GET("/settings", handlers.AdminGetSettings)
	r.PUT("/settings", handlers.AdminUpdateSettings)

	logs := r.Group("/system-logs")
	{
		logs.GET("", handlers.ListSystemLogs)
		logs.GET("/:id", handlers.GetSystemLog)
	}
}
