package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypePurchase      = "purchase"
	TransactionTypeSpecialNFT    = "special_nft"
	TransactionTypeRewardPayment = "reward_payment"
)

// Transaction is an append-only ledger entry. Fee is informational and only
// set on reward payouts; Amount is always the net amount moved.
type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	UserID      uint            `gorm:"column:user_id;not null;index" json:"user_id"`
	Type        string          `gorm:"column:type;size:30;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(20,8);not null" json:"amount"`
	Fee         decimal.Decimal `gorm:"column:fee;type:numeric(20,8);not null;default:0" json:"fee"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
