package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shoguntrade/internal/models"
	"shoguntrade/pkg/metrics"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RewardService runs the weekly claim workflow:
//
//	reward:  calculated -> pending -> paid | calculated
//	request: pending -> approved | rejected
//
// Every transition runs in one store transaction. The conditional
// calculated -> pending update is the claim lock: a concurrent submit for
// the same records updates fewer rows than it selected and is refused.
// Claimed records carry the id of their request, and a decision moves only
// those records.
type RewardService struct {
	db     *gorm.DB
	fees   FeePolicy
	events EventPublisher
	now    func() time.Time
}

// NewRewardService creates a workflow bound to db. events may be nil.
func NewRewardService(db *gorm.DB, fees FeePolicy, events EventPublisher) *RewardService {
	return &RewardService{
		db:     db,
		fees:   fees,
		events: events,
		now:    time.Now,
	}
}

// SubmitRequest claims every calculated reward of userID dated inside
// [weekStart, weekEnd]. With the compound option the claimed total is added
// to total_earned of every holding the user owns.
func (s *RewardService) SubmitRequest(ctx context.Context, userID uint, weekStart, weekEnd time.Time, option string) (*models.RewardRequest, error) {
	if weekStart.IsZero() || weekEnd.IsZero() {
		return nil, ErrInvalidRange
	}
	start, end := DateOnly(weekStart), DateOnly(weekEnd)
	if start.After(end) {
		return nil, ErrInvalidRange.Withf("week start %s is after week end %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	if option != models.RewardOptionAirdrop && option != models.RewardOptionCompound {
		return nil, ErrInvalidOption
	}

	var request models.RewardRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		holdingIDs, err := holdingIDsOf(tx, userID)
		if err != nil {
			return err
		}
		if len(holdingIDs) == 0 {
			return ErrNoClaimableReward
		}

		var rewards []models.Reward
		if err := tx.Where("user_nft_id IN ? AND status = ? AND date BETWEEN ? AND ?",
			holdingIDs, models.RewardStatusCalculated, start, end).
			Find(&rewards).Error; err != nil {
			return err
		}

		total := decimal.Zero
		ids := make([]uint, 0, len(rewards))
		for _, r := range rewards {
			total = total.Add(r.Amount)
			ids = append(ids, r.ID)
		}
		if !total.IsPositive() {
			return ErrNoClaimableReward
		}

		request = models.RewardRequest{
			UserID:          userID,
			WeekStart:       start,
			WeekEnd:         end,
			TotalAmount:     total,
			Option:          option,
			SurveyCompleted: option == models.RewardOptionCompound,
			Status:          models.RequestStatusPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Reward{}).
			Where("id IN ? AND status = ?", ids, models.RewardStatusCalculated).
			Updates(map[string]interface{}{
				"status":            models.RewardStatusPending,
				"reward_request_id": request.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			// another request claimed some of these records first
			return ErrNoClaimableReward
		}

		if option == models.RewardOptionCompound {
			// credited to every holding of the user, not only the ones that
			// produced the claimed records
			if err := tx.Model(&models.UserNFT{}).
				Where("user_id = ?", userID).
				Update("total_earned", gorm.Expr("total_earned + ?", total)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}

	metrics.RewardRequestsSubmitted.WithLabelValues(option).Inc()
	log.WithFields(log.Fields{
		"request_id":   request.ID,
		"user_id":      userID,
		"week_start":   start.Format(dateLayout),
		"week_end":     end.Format(dateLayout),
		"total_amount": request.TotalAmount.String(),
		"option":       option,
	}).Info("Reward request submitted")

	event := s.eventFor(EventRequestSubmitted, &request)
	s.publish(ctx, event)
	return &request, nil
}

// SubmitSurvey completes the survey step of an airdrop request owned by userID.
func (s *RewardService) SubmitSurvey(ctx context.Context, userID, requestID uint, answers map[string]interface{}) (*models.RewardRequest, error) {
	var request models.RewardRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", requestID, userID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("reward request %d not found", requestID)
			}
			return err
		}
		if request.Option == models.RewardOptionCompound {
			return ErrInvalidState.Withf("survey is not required for compound requests")
		}
		if request.SurveyCompleted {
			return ErrInvalidState.Withf("survey already completed")
		}

		res := tx.Model(&models.RewardRequest{}).
			Where("id = ? AND survey_completed = ?", request.ID, false).
			Updates(map[string]interface{}{
				"survey_completed": true,
				"survey_answers":   models.JSONMap(answers),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState.Withf("survey already completed")
		}
		request.SurveyCompleted = true
		request.SurveyAnswers = answers
		return nil
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}

	s.publish(ctx, s.eventFor(EventSurveyCompleted, &request))
	return &request, nil
}

// DecideRequest approves or rejects a pending request. Approval marks the
// week's pending rewards paid and, for airdrops, appends the net payout to
// the ledger. Rejection returns the rewards to calculated.
func (s *RewardService) DecideRequest(ctx context.Context, requestID uint, decision string) (*models.RewardRequest, error) {
	if decision != models.RequestStatusApproved && decision != models.RequestStatusRejected {
		return nil, ErrInvalidDecision
	}

	var (
		request  models.RewardRequest
		fee, net decimal.Decimal
		paid     bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("reward request %d not found", requestID)
			}
			return err
		}
		if request.Status != models.RequestStatusPending {
			return ErrInvalidState.Withf("reward request %d is already %s", request.ID, request.Status)
		}

		res := tx.Model(&models.RewardRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
			Update("status", decision)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState.Withf("reward request %d was decided concurrently", request.ID)
		}
		request.Status = decision

		// only the records this request claimed move; a rejected claim
		// releases them for a later request
		release := map[string]interface{}{"status": models.RewardStatusPaid}
		if decision == models.RequestStatusRejected {
			release = map[string]interface{}{
				"status":            models.RewardStatusCalculated,
				"reward_request_id": nil,
			}
		}
		if err := tx.Model(&models.Reward{}).
			Where("reward_request_id = ? AND status = ?", request.ID, models.RewardStatusPending).
			Updates(release).Error; err != nil {
			return err
		}

		if decision != models.RequestStatusApproved || request.Option != models.RewardOptionAirdrop {
			return nil
		}

		var user models.User
		if err := tx.Select("id", "wallet_type").First(&user, request.UserID).Error; err != nil {
			return fmt.Errorf("load payout wallet: %w", err)
		}
		fee, net = s.fees.Split(request.TotalAmount, user.WalletType)
		payout := models.Transaction{
			UserID:      request.UserID,
			Type:        models.TransactionTypeRewardPayment,
			Amount:      net,
			Fee:         fee,
			Description: fmt.Sprintf("Reward payout (fee: %s USDT)", fee.String()),
		}
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}
		paid = true
		return nil
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}

	metrics.RewardRequestsDecided.WithLabelValues(decision, request.Option).Inc()
	fields := log.Fields{
		"request_id": request.ID,
		"user_id":    request.UserID,
		"decision":   decision,
		"option":     request.Option,
	}
	if paid {
		metrics.RewardPayoutNet.Add(net.InexactFloat64())
		fields["net_amount"] = net.String()
		fields["fee"] = fee.String()
	}
	log.WithFields(fields).Info("Reward request decided")

	event := s.eventFor(EventRequestDecided, &request)
	if paid {
		event.Fee = &fee
		event.NetAmount = &net
	}
	s.publish(ctx, event)
	return &request, nil
}

func (s *RewardService) eventFor(eventType string, r *models.RewardRequest) RewardEvent {
	event := newRewardEvent(eventType, s.now())
	event.RequestID = r.ID
	event.UserID = r.UserID
	event.Option = r.Option
	event.Status = r.Status
	event.WeekStart = r.WeekStart.Format(dateLayout)
	event.WeekEnd = r.WeekEnd.Format(dateLayout)
	event.TotalAmount = r.TotalAmount
	return event
}

func (s *RewardService) publish(ctx context.Context, event RewardEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRewardEvent(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"event_type": event.Type,
			"request_id": event.RequestID,
			"error":      err.Error(),
		}).Warn("Failed to publish reward event")
	}
}

func holdingIDsOf(tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	if err := tx.Model(&models.UserNFT{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
