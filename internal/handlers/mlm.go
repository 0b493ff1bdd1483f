package handlers

import (
	"net/http"

	"shoguntrade/internal/handlers/business"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
)

// ListRanks returns the rank catalog in progression order
func ListRanks(c *gin.Context) {
	ranks, err := business.ListRanks(c.Request.Context(), dbconfig.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranks)
}

// GetMyRank returns the caller's current rank assignment, or null
func GetMyRank(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	current, err := business.CurrentRank(c.Request.Context(), dbconfig.DB, caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_rank": current})
}

// GetOrganization returns the caller's direct referrals with line totals
func GetOrganization(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	org, err := business.ComputeOrganization(c.Request.Context(), dbconfig.DB, caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// GetRankProgress reports progress towards the next rank
func GetRankProgress(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	ranks, err := business.ListRanks(ctx, dbconfig.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	progress, err := business.ComputeRankProgress(ctx, dbconfig.DB, caller.UserID, ranks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
