package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RewardStatusCalculated = "calculated"
	RewardStatusPending    = "pending"
	RewardStatusPaid       = "paid"

	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"

	RewardOptionAirdrop  = "airdrop"
	RewardOptionCompound = "compound"
)

// Reward is the daily yield record of a single holding. RewardRequestID
// names the request holding the claim while the record is pending, and the
// request that paid it once paid.
type Reward struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserNFTID       uint            `gorm:"column:user_nft_id;not null;uniqueIndex:idx_rewards_holding_date" json:"user_nft_id"`
	Date            time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:idx_rewards_holding_date;index" json:"date"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(20,8);not null" json:"amount"`
	DailyRate       decimal.Decimal `gorm:"column:daily_rate;type:numeric(12,8);not null" json:"daily_rate"`
	Status          string          `gorm:"column:status;size:20;not null;default:'calculated';index" json:"status"`
	RewardRequestID *uint           `gorm:"column:reward_request_id;index" json:"reward_request_id,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UserNFT         *UserNFT        `gorm:"foreignKey:UserNFTID" json:"user_nft,omitempty"`
}

func (Reward) TableName() string {
	return "rewards"
}

// RewardRequest is a user's claim over one week of calculated rewards.
// TotalAmount is frozen at creation.
type RewardRequest struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	WeekStart       time.Time       `gorm:"column:week_start;type:date;not null" json:"week_start"`
	WeekEnd         time.Time       `gorm:"column:week_end;type:date;not null" json:"week_end"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(20,8);not null" json:"total_amount"`
	Option          string          `gorm:"column:option;size:20;not null" json:"option"`
	SurveyCompleted bool            `gorm:"column:survey_completed;default:false" json:"survey_completed"`
	SurveyAnswers   JSONMap         `gorm:"column:survey_answers;type:jsonb" json:"survey_answers,omitempty"`
	Status          string          `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (RewardRequest) TableName() string {
	return "reward_requests"
}
