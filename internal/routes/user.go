package routes

import (
	"shoguntrade/internal/handlers"
	"shoguntrade/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the caller's profile routes
func SetupUserRoutes(r *gin.RouterGroup) {
	users := r.Group("/users", middleware.AuthRequired())
	{
		users.GET("/profile", handlers.GetProfile)
		users.GET("/nfts", handlers.GetUserNFTs)
	}
}
