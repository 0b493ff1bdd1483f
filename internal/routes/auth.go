package routes

import (
	"shoguntrade/internal/handlers"
	"shoguntrade/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up registration and login
func SetupAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.MaintenanceGate(), handlers.Register)
		auth.POST("/login", handlers.Login)
	}
}
