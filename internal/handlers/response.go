package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/middleware"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	rewardMu      sync.RWMutex
	rewardService *business.RewardService
)

// InitRewardService wires the reward workflow to the current store. The API
// calls it once after the database is up.
func InitRewardService(fees business.FeePolicy, events business.EventPublisher) {
	svc := business.NewRewardService(dbconfig.DB, fees, events)
	rewardMu.Lock()
	rewardService = svc
	rewardMu.Unlock()
}

// rewards returns the wired workflow. Without InitRewardService it builds an
// unpublished one on the current store for each call.
func rewards() *business.RewardService {
	rewardMu.RLock()
	svc := rewardService
	rewardMu.RUnlock()
	if svc != nil {
		return svc
	}
	return business.NewRewardService(dbconfig.DB, business.DefaultFeePolicy(), nil)
}

func statusFor(kind business.Kind) int {
	switch kind {
	case business.KindValidation, business.KindNoClaimableReward:
		return http.StatusBadRequest
	case business.KindNotFound:
		return http.StatusNotFound
	case business.KindStateConflict:
		return http.StatusConflict
	case business.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "code"}. Internal failures are logged
// and reported without their cause.
func respondError(c *gin.Context, err error) {
	var be *business.Error
	if !errors.As(err, &be) {
		log.WithFields(log.Fields{"path": c.FullPath()}).Errorf("Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal_error"})
		return
	}
	status := statusFor(be.Kind)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{"path": c.FullPath(), "code": be.Code}).Errorf("Request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": be.Message, "code": be.Code})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "validation_error"})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

func mustCaller(c *gin.Context) (middleware.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required", "code": "unauthorized"})
	}
	return caller, ok
}
