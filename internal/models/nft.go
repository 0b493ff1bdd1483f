package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	HoldingStatusWaiting   = "waiting"
	HoldingStatusActive    = "active"
	HoldingStatusCompleted = "completed"

	// OperationDelayDays is the gap between purchase and the first accrual day.
	OperationDelayDays = 7
)

// NFT is a catalog entry. DailyRate is the daily yield cap as a fraction of Price.
type NFT struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `gorm:"column:name;size:100;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(20,8);not null" json:"price"`
	DailyRate decimal.Decimal `gorm:"column:daily_rate;type:numeric(12,8);not null" json:"daily_rate"`
	ImageURL  string          `gorm:"column:image_url;size:512" json:"image_url"`
	IsSpecial bool            `gorm:"column:is_special;default:false" json:"is_special"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (NFT) TableName() string {
	return "nfts"
}

// UserNFT is a holding: one purchased or admin-assigned NFT instance.
type UserNFT struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	UserID             uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	NFTID              uint            `gorm:"column:nft_id;not null;index" json:"nft_id"`
	PurchaseDate       time.Time       `gorm:"column:purchase_date;not null" json:"purchase_date"`
	OperationStartDate time.Time       `gorm:"column:operation_start_date;type:date;not null" json:"operation_start_date"`
	Status             string          `gorm:"column:status;size:20;not null;default:'waiting'" json:"status"`
	TotalEarned        decimal.Decimal `gorm:"column:total_earned;type:numeric(20,8);not null;default:0" json:"total_earned"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	NFT                *NFT            `gorm:"foreignKey:NFTID" json:"nft,omitempty"`
}

func (UserNFT) TableName() string {
	return "user_nfts"
}
