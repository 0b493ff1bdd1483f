package handlers

import (
	"net/http"

	"shoguntrade/internal/models"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's account
func GetProfile(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var user models.User
	if err := dbconfig.DB.WithContext(c.Request.Context()).First(&user, caller.UserID).Error; err != nil {
		respondError(c, err)
		return
	}

	var referrals int64
	if err := dbconfig.DB.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("referrer_id = ?", user.ID).Count(&referrals).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "referrals_count": referrals})
}

// GetUserNFTs returns the caller's holdings with their catalog entry
func GetUserNFTs(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	var holdings []models.UserNFT
	if err := dbconfig.DB.WithContext(c.Request.Context()).
		Preload("NFT").
		Where("user_id = ?", caller.UserID).
		Order("purchase_date desc").
		Find(&holdings).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, holdings)
}
