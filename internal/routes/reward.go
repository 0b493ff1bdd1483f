package routes

import (
	"shoguntrade/internal/handlers"
	"shoguntrade/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRewardRoutes sets up reward history and the claim workflow
func SetupRewardRoutes(r *gin.RouterGroup) {
	rewards := r.Group("/rewards", middleware.AuthRequired(), middleware.MaintenanceGate())
	{
		rewards.GET("", handlers.ListRewards)
		rewards.GET("/weekly", handlers.WeeklyRewards)
		rewards.POST("/request", handlers.SubmitRewardRequest)
		rewards.GET("/requests", handlers.ListRewardRequests)
		rewards.POST("/survey/:requestId", handlers.SubmitSurvey)
	}
}
