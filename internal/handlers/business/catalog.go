package business

import (
	"context"
	"errors"
	"strings"

	"shoguntrade/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListPurchasableNFTs returns the regular catalog, cheapest first.
func ListPurchasableNFTs(ctx context.Context, db *gorm.DB) ([]models.NFT, error) {
	var nfts []models.NFT
	err := db.WithContext(ctx).
		Where("is_special = ?", false).
		Order("price asc").
		Order("id asc").
		Find(&nfts).Error
	return nfts, err
}

// NFTUpdate is the editable part of a catalog entry.
type NFTUpdate struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	ImageURL  string          `json:"image_url"`
}

func (u NFTUpdate) validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrValidation.Withf("name is required")
	}
	if !u.Price.IsPositive() {
		return ErrValidation.Withf("price must be positive")
	}
	if !u.DailyRate.IsPositive() || u.DailyRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrValidation.Withf("daily_rate must be in (0, 1]")
	}
	return nil
}

// UpdateNFT edits a catalog entry. Rewards already accrued keep the rate
// they were computed with.
func UpdateNFT(ctx context.Context, db *gorm.DB, nftID uint, update NFTUpdate) (*models.NFT, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}
	var nft models.NFT
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&nft, nftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("nft %d not found", nftID)
			}
			return err
		}
		if err := tx.Model(&nft).Updates(map[string]interface{}{
			"name":       update.Name,
			"price":      update.Price,
			"daily_rate": update.DailyRate,
			"image_url":  update.ImageURL,
		}).Error; err != nil {
			return err
		}
		return tx.First(&nft, nftID).Error
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return &nft, nil
}
