package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/middleware"
	"shoguntrade/internal/models"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminUser is a user row of the admin console.
type AdminUser struct {
	models.User
	ReferralsCount  int             `json:"referrals_count"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
}

type AssignSpecialNFTRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	NFTID  uint `json:"nft_id" binding:"required"`
}

type DecideRewardRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type ImportUsersRequest struct {
	Users []business.RegisterInput `json:"users" binding:"required"`
}

type AssignRankRequest struct {
	RankID        uint   `json:"rank_id" binding:"required"`
	EffectiveDate string `json:"effective_date"`
}

// audit records an admin action in the system log.
func audit(c *gin.Context, message string, meta models.JSONMap) {
	caller, _ := middleware.CallerFrom(c)
	business.RecordSystemLog(c.Request.Context(), dbconfig.DB, models.SystemLog{
		UserID:  caller.UserID,
		Level:   business.LogLevelInfo,
		Module:  "admin",
		Message: message,
		Meta:    meta,
	})
}

// AdminListUsers lists users with referral count and investment
func AdminListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	p := pageFrom(c, map[string]bool{"id": true, "username": true, "created_at": true}, "id")

	query := dbconfig.DB.WithContext(ctx).Model(&models.User{})
	if q := c.Query("search"); q != "" {
		like := "%" + q + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var users []models.User
	if err := p.apply(query).Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	tree, err := business.LoadReferralTree(ctx, dbconfig.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	rows := make([]AdminUser, 0, len(users))
	for _, u := range users {
		rows = append(rows, AdminUser{
			User:            u,
			ReferralsCount:  tree.DirectReferrals(u.ID),
			TotalInvestment: tree.Investment(u.ID),
		})
	}
	c.JSON(http.StatusOK, p.response(rows, total))
}

// AdminGetUser returns one user with holdings
func AdminGetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var user models.User
	if err := dbconfig.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, business.ErrNotFound.Withf("user %d not found", id))
			return
		}
		respondError(c, err)
		return
	}
	var holdings []models.UserNFT
	if err := dbconfig.DB.WithContext(ctx).Preload("NFT").
		Where("user_id = ?", id).Order("purchase_date desc").Find(&holdings).Error; err != nil {
		respondError(c, err)
		return
	}
	current, err := business.CurrentRank(ctx, dbconfig.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "nfts": holdings, "rank": current})
}

// AssignSpecialNFT grants a special NFT to a user
func AssignSpecialNFT(c *gin.Context) {
	var req AssignSpecialNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	holding, err := business.AssignSpecialNFT(c.Request.Context(), dbconfig.DB, req.UserID, req.NFTID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, fmt.Sprintf("Assigned special NFT %d to user %d", req.NFTID, req.UserID),
		models.JSONMap{"user_id": req.UserID, "nft_id": req.NFTID, "holding_id": holding.ID})
	c.JSON(http.StatusCreated, holding)
}

// AdminListNFTs returns the whole catalog, special NFTs included
func AdminListNFTs(c *gin.Context) {
	var nfts []models.NFT
	if err := dbconfig.DB.WithContext(c.Request.Context()).
		Order("is_special asc").Order("price asc").Order("id asc").
		Find(&nfts).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nfts)
}

// AdminUpdateNFT edits a catalog entry
func AdminUpdateNFT(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req business.NFTUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	nft, err := business.UpdateNFT(c.Request.Context(), dbconfig.DB, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, fmt.Sprintf("Updated NFT %d", id), models.JSONMap{
		"nft_id": id, "price": nft.Price.String(), "daily_rate": nft.DailyRate.String(),
	})
	c.JSON(http.StatusOK, nft)
}

// AdminListRewardRequests lists reward requests, optionally by status
func AdminListRewardRequests(c *gin.Context) {
	p := pageFrom(c, map[string]bool{"id": true, "created_at": true, "total_amount": true, "week_start": true}, "created_at")
	query := dbconfig.DB.WithContext(c.Request.Context()).Model(&models.RewardRequest{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if option := c.Query("option"); option != "" {
		query = query.Where("option = ?", option)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var requests []models.RewardRequest
	if err := p.apply(query).Preload("User").Find(&requests).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p.response(requests, total))
}

// AdminDecideRewardRequest approves or rejects a pending request
func AdminDecideRewardRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req DecideRewardRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	request, err := rewards().DecideRequest(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, fmt.Sprintf("Reward request %d %s", id, request.Status), models.JSONMap{
		"request_id": id, "status": request.Status, "option": request.Option,
		"total_amount": request.TotalAmount.String(),
	})
	c.JSON(http.StatusOK, request)
}

// AdminImportUsers bulk-creates users and reports failures per row
func AdminImportUsers(c *gin.Context) {
	var req ImportUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := business.ImportUsers(c.Request.Context(), dbconfig.DB, req.Users)
	if err != nil {
		respondError(c, err)
		return
	}
	log.WithFields(log.Fields{"success": result.Success, "failed": result.Failed}).Info("Users imported")
	audit(c, fmt.Sprintf("Imported %d users (%d failed)", result.Success, result.Failed),
		models.JSONMap{"success": result.Success, "failed": result.Failed})
	c.JSON(http.StatusOK, result)
}

// AdminAssignRank records a rank for a user
func AdminAssignRank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AssignRankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	effective := time.Now()
	if req.EffectiveDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveDate)
		if err != nil {
			badRequest(c, "effective_date must be YYYY-MM-DD")
			return
		}
		effective = parsed
	}
	assignment, err := business.AssignRank(c.Request.Context(), dbconfig.DB, id, req.RankID, effective)
	if err != nil {
		respondError(c, err)
		return
	}
	audit(c, fmt.Sprintf("Assigned rank %d to user %d", req.RankID, id),
		models.JSONMap{"user_id": id, "rank_id": req.RankID})
	c.JSON(http.StatusCreated, assignment)
}
