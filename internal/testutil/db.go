// Package testutil provides an in-memory ledger store and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"shoguntrade/internal/auth"
	"shoguntrade/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite store with the full schema.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sqlite handle: %v", err)
	}
	// A single connection serialises writers the way row locks would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// Date parses YYYY-MM-DD as UTC midnight.
func Date(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateUser inserts a user with password "password".
func CreateUser(t testing.TB, db *gorm.DB, username string, referrerID *uint, opts ...func(*models.User)) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{
		Name:       username,
		Username:   username,
		Email:      username + "@example.com",
		Password:   hashed,
		Phone:      "000",
		ReferrerID: referrerID,
		WalletType: models.WalletTypeOther,
	}
	for _, opt := range opts {
		opt(u)
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// AsAdmin marks a fixture user as admin.
func AsAdmin(u *models.User) { u.IsAdmin = true }

// WithWallet sets the wallet type of a fixture user.
func WithWallet(walletType string) func(*models.User) {
	return func(u *models.User) { u.WalletType = walletType }
}

// CreateNFT inserts a catalog entry.
func CreateNFT(t testing.TB, db *gorm.DB, name, price, dailyRate string, special bool) *models.NFT {
	t.Helper()
	n := &models.NFT{Name: name, Price: Dec(price), DailyRate: Dec(dailyRate), IsSpecial: special}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("create nft %s: %v", name, err)
	}
	return n
}

// CreateHolding inserts an active holding of nft for user.
func CreateHolding(t testing.TB, db *gorm.DB, userID, nftID uint) *models.UserNFT {
	t.Helper()
	h := &models.UserNFT{
		UserID:             userID,
		NFTID:              nftID,
		PurchaseDate:       time.Now(),
		OperationStartDate: time.Now(),
		Status:             models.HoldingStatusActive,
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("create holding: %v", err)
	}
	return h
}

// CreateReward inserts a daily reward record for a holding.
func CreateReward(t testing.TB, db *gorm.DB, holdingID uint, date time.Time, amount, status string) *models.Reward {
	t.Helper()
	r := &models.Reward{
		UserNFTID: holdingID,
		Date:      date,
		Amount:    Dec(amount),
		DailyRate: Dec("0.01"),
		Status:    status,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create reward: %v", err)
	}
	return r
}
