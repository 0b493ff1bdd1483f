package business

import (
	"context"
	"time"

	"shoguntrade/internal/models"
	"shoguntrade/pkg/metrics"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccrualSummary reports one accrual run.
type AccrualSummary struct {
	Day       string `json:"day"`
	Skipped   bool   `json:"skipped"`
	Activated int64  `json:"activated"`
	Created   int64  `json:"created"`
}

// RunAccrual produces the yield of day. Weekends are skipped so every
// record falls inside its own Monday–Friday window. Waiting holdings whose
// operation start has been reached become active first; each active
// holding then gets one calculated record of price × daily_rate. Records
// that already exist for the day are left untouched, so reruns are safe.
func RunAccrual(ctx context.Context, db *gorm.DB, day time.Time) (*AccrualSummary, error) {
	d := DateOnly(day)
	summary := &AccrualSummary{Day: d.Format(dateLayout)}
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		summary.Skipped = true
		return summary, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserNFT{}).
			Where("status = ? AND operation_start_date <= ?", models.HoldingStatusWaiting, d).
			Update("status", models.HoldingStatusActive)
		if res.Error != nil {
			return res.Error
		}
		summary.Activated = res.RowsAffected

		var holdings []models.UserNFT
		if err := tx.Preload("NFT").
			Where("status = ? AND operation_start_date <= ?", models.HoldingStatusActive, d).
			Find(&holdings).Error; err != nil {
			return err
		}

		for _, h := range holdings {
			if h.NFT == nil {
				continue
			}
			reward := models.Reward{
				UserNFTID: h.ID,
				Date:      d,
				Amount:    h.NFT.Price.Mul(h.NFT.DailyRate),
				DailyRate: h.NFT.DailyRate,
				Status:    models.RewardStatusCalculated,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reward)
			if res.Error != nil {
				return res.Error
			}
			summary.Created += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AccrualRecordsCreated.Add(float64(summary.Created))
	log.WithFields(log.Fields{
		"day":       summary.Day,
		"activated": summary.Activated,
		"created":   summary.Created,
	}).Info("Yield accrual completed")
	return summary, nil
}
