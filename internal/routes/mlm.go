package routes

import (
	"shoguntrade/internal/handlers"
	"shoguntrade/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMLMRoutes sets up rank and organization routes
func SetupMLMRoutes(r *gin.RouterGroup) {
	mlm := r.Group("/mlm", middleware.AuthRequired())
	{
		mlm.GET("/ranks", handlers.ListRanks)
		mlm.GET("/my-rank", handlers.GetMyRank)
		mlm.GET("/organization", handlers.GetOrganization)
		mlm.GET("/progress", handlers.GetRankProgress)
	}
}
