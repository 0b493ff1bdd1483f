package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultCompanyProfitPercentage = 20
)

// SystemLog represents a record in system_logs table
type SystemLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"column:user_id;default:0;index" json:"user_id"`
	Level      string    `gorm:"column:level;size:10;not null" json:"level"` // DEBUG, INFO, WARN, ERROR, FATAL
	Message    string    `gorm:"column:message;type:text;not null" json:"message"`
	Module     string    `gorm:"column:module;size:100" json:"module"` // e.g. "reward", "admin", "payout"
	ErrorStack string    `gorm:"column:error_stack;type:text" json:"error_stack"`
	Meta       JSONMap   `gorm:"column:meta;type:jsonb" json:"meta"`
	DedupKey   *string   `gorm:"column:dedup_key;size:100;uniqueIndex" json:"dedup_key,omitempty"` // set on entries written at most once
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}

// SystemSettings represents the single row of system_settings table
type SystemSettings struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	MaintenanceMode         bool      `gorm:"column:maintenance_mode;default:false" json:"maintenance_mode"`
	CompanyProfitPercentage int       `gorm:"column:company_profit_percentage;default:20" json:"company_profit_percentage"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}

// AutoMigrate creates or updates every table of the ledger store.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&NFT{},
		&UserNFT{},
		&Reward{},
		&RewardRequest{},
		&Transaction{},
		&MLMRank{},
		&UserRank{},
		&SystemLog{},
		&SystemSettings{},
	)
}
