package routes

import (
	"shoguntrade/internal/handlers"
	"shoguntrade/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupNFTRoutes sets up the catalog and purchase routes
func SetupNFTRoutes(r *gin.RouterGroup) {
	nfts := r.Group("/nfts", middleware.AuthRequired(), middleware.MaintenanceGate())
	{
		nfts.GET("", handlers.ListNFTs)
		nfts.POST("/:id/purchase", handlers.PurchaseNFT)
	}
}
