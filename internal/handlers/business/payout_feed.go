package business

import (
	"context"
	"encoding/json"
	"fmt"

	"shoguntrade/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// payoutKey identifies the payout instruction of a request. Redelivered
// events map to the same key and are recorded once.
func payoutKey(requestID uint) string {
	return fmt.Sprintf("payout:request:%d", requestID)
}

// HandlePayoutEvent consumes one queued reward event. Approved airdrops are
// written to the system log as payout instructions for the operator; every
// other event is acknowledged without side effects. Each request yields at
// most one instruction however often its event is delivered.
func HandlePayoutEvent(ctx context.Context, db *gorm.DB, body []byte) error {
	var event RewardEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// A malformed message will never succeed; drop it instead of requeueing.
		log.Errorf("Discarding malformed reward event: %v", err)
		return nil
	}
	if event.Type != EventRequestDecided ||
		event.Status != models.RequestStatusApproved ||
		event.Option != models.RewardOptionAirdrop {
		return nil
	}

	var user models.User
	if err := db.WithContext(ctx).Select("id", "username", "usdt_address", "wallet_type").First(&user, event.UserID).Error; err != nil {
		return fmt.Errorf("failed to load payout recipient %d: %w", event.UserID, err)
	}

	meta := models.JSONMap{
		"event_id":     event.ID,
		"request_id":   event.RequestID,
		"usdt_address": user.UsdtAddress,
		"wallet_type":  user.WalletType,
		"total_amount": event.TotalAmount.String(),
		"week_start":   event.WeekStart,
		"week_end":     event.WeekEnd,
	}
	net := event.TotalAmount
	if event.NetAmount != nil {
		net = *event.NetAmount
		meta["net_amount"] = event.NetAmount.String()
	}
	if event.Fee != nil {
		meta["fee"] = event.Fee.String()
	}

	key := payoutKey(event.RequestID)
	entry := models.SystemLog{
		UserID:   event.UserID,
		Level:    LogLevelInfo,
		Module:   "payout",
		Message:  fmt.Sprintf("Airdrop payout due: %s USDT to %s (request %d)", net.String(), user.Username, event.RequestID),
		Meta:     meta,
		DedupKey: &key,
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "dedup_key"}}, DoNothing: true}).
		Create(&entry)
	if res.Error != nil {
		return fmt.Errorf("failed to record payout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.WithField("request_id", event.RequestID).Info("Payout already recorded, skipping duplicate event")
		return nil
	}
	log.WithFields(log.Fields{
		"request_id": event.RequestID,
		"user_id":    event.UserID,
		"net_amount": net.String(),
	}).Info("Recorded airdrop payout")
	return nil
}
