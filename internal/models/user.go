package models

import (
	"time"
)

const (
	WalletTypeEvo   = "evo"
	WalletTypeOther = "other"
)

// User represents a registered member. ReferrerID is fixed at registration.
type User struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Username    string    `gorm:"column:username;size:50;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"column:password;size:255;not null" json:"-"`
	Phone       string    `gorm:"column:phone;size:30" json:"phone"`
	ReferrerID  *uint     `gorm:"column:referrer_id;index" json:"referrer_id"`
	UsdtAddress string    `gorm:"column:usdt_address;size:128" json:"usdt_address"`
	WalletType  string    `gorm:"column:wallet_type;size:20;default:'other'" json:"wallet_type"`
	IsAdmin     bool      `gorm:"column:is_admin;default:false" json:"is_admin"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
