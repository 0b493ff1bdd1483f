package handlers

import (
	"net/http"
	"slices"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/models"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RewardRequestBody selects a week either as "start_end" or as two dates.
type RewardRequestBody struct {
	Option    string `json:"option" binding:"required"`
	Week      string `json:"week"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
}

func (b RewardRequestBody) week() (business.Week, error) {
	if b.Week != "" {
		return business.ParseWeekKey(b.Week)
	}
	return business.ParseWeekRange(b.WeekStart, b.WeekEnd)
}

// SurveyBody carries the airdrop survey answers.
type SurveyBody struct {
	Answers map[string]interface{} `json:"answers" binding:"required"`
}

func userRewards(c *gin.Context, userID uint) ([]models.Reward, error) {
	var rewards []models.Reward
	err := dbconfig.DB.WithContext(c.Request.Context()).
		Joins("JOIN user_nfts ON user_nfts.id = rewards.user_nft_id").
		Where("user_nfts.user_id = ?", userID).
		Preload("UserNFT", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "nft_id")
		}).
		Preload("UserNFT.NFT", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("rewards.date desc").
		Order("rewards.id desc").
		Find(&rewards).Error
	return rewards, err
}

// ListRewards returns the caller's daily reward records, newest first
func ListRewards(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	rewards, err := userRewards(c, caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// WeeklyRewards returns the caller's rewards grouped into Mon-Fri weeks
func WeeklyRewards(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	rewards, err := userRewards(c, caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	weeks := slices.Collect(business.GroupByWeek(rewards))
	if weeks == nil {
		weeks = []business.WeekBucket{}
	}
	c.JSON(http.StatusOK, weeks)
}

// SubmitRewardRequest claims one week of calculated rewards
func SubmitRewardRequest(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body RewardRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	week, err := body.week()
	if err != nil {
		respondError(c, err)
		return
	}

	request, err := rewards().SubmitRequest(c.Request.Context(), caller.UserID, week.Start, week.End, body.Option)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListRewardRequests returns the caller's requests, newest first
func ListRewardRequests(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var requests []models.RewardRequest
	if err := dbconfig.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", caller.UserID).
		Order("created_at desc").
		Order("id desc").
		Find(&requests).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// SubmitSurvey completes the survey of an airdrop request
func SubmitSurvey(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	requestID, ok := parseID(c, "requestId")
	if !ok {
		return
	}
	var body SurveyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(body.Answers) == 0 {
		badRequest(c, "answers are required")
		return
	}

	request, err := rewards().SubmitSurvey(c.Request.Context(), caller.UserID, requestID, body.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
