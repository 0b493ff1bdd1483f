package routes

import (
	"shoguntrade/internal/handlers"
	"shoguntrade/internal/middleware"
	"shoguntrade/internal/realtime"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the admin console. Every route requires the
// admin capability.
func SetupAdminRoutes(r *gin.RouterGroup, hub *realtime.Hub) {
	admin := r.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.AdminListUsers)
		admin.GET("/users/:id", handlers.AdminGetUser)
		admin.POST("/users/:id/rank", handlers.AdminAssignRank)
		admin.POST("/import-users", handlers.AdminImportUsers)
		admin.POST("/assign-special-nft", handlers.AssignSpecialNFT)

		admin.GET("/nfts", handlers.AdminListNFTs)
		admin.PUT("/nfts/:id", handlers.AdminUpdateNFT)

		admin.GET("/reward-requests", handlers.AdminListRewardRequests)
		admin.PUT("/reward-requests/:id", handlers.AdminDecideRewardRequest)
	}

	SetupSystemConfigRoutes(admin)

	if hub != nil {
		admin.GET("/ws", func(c *gin.Context) {
			hub.ServeWS(c.Writer, c.Request)
		})
	}
}
