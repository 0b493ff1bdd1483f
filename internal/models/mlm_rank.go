package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MLMRank is a tier of the referral programme. Ranks progress in ascending
// MinInvestment order.
type MLMRank struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	Name                  string          `gorm:"column:name;size:50;not null" json:"name"`
	MinInvestment         decimal.Decimal `gorm:"column:min_investment;type:numeric(20,8);not null" json:"min_investment"`
	MaxLineRequirement    decimal.Decimal `gorm:"column:max_line_requirement;type:numeric(20,8);not null" json:"max_line_requirement"`
	OtherLinesRequirement decimal.Decimal `gorm:"column:other_lines_requirement;type:numeric(20,8);not null" json:"other_lines_requirement"`
	DistributionRate      decimal.Decimal `gorm:"column:distribution_rate;type:numeric(8,4);not null" json:"distribution_rate"`
	BonusRate             decimal.Decimal `gorm:"column:bonus_rate;type:numeric(8,4);not null;default:0" json:"bonus_rate"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MLMRank) TableName() string {
	return "mlm_ranks"
}

// UserRank records a rank assignment. The latest EffectiveDate is current.
type UserRank struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	RankID        uint      `gorm:"column:rank_id;not null" json:"rank_id"`
	EffectiveDate time.Time `gorm:"column:effective_date;not null" json:"effective_date"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Rank          *MLMRank  `gorm:"foreignKey:RankID" json:"rank,omitempty"`
}

func (UserRank) TableName() string {
	return "user_ranks"
}
