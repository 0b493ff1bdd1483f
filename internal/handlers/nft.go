package handlers

import (
	"net/http"
	"time"

	"shoguntrade/internal/handlers/business"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ListNFTs returns the purchasable catalog
func ListNFTs(c *gin.Context) {
	nfts, err := business.ListPurchasableNFTs(c.Request.Context(), dbconfig.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nfts)
}

// PurchaseNFT buys one NFT for the caller
func PurchaseNFT(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	nftID, ok := parseID(c, "id")
	if !ok {
		return
	}

	holding, err := business.PurchaseNFT(c.Request.Context(), dbconfig.DB, caller.UserID, nftID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"user_id":    caller.UserID,
		"nft_id":     nftID,
		"holding_id": holding.ID,
	}).Info("NFT purchased")
	c.JSON(http.StatusCreated, holding)
}
