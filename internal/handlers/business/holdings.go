package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shoguntrade/internal/models"

	"gorm.io/gorm"
)

// newHolding builds a waiting holding whose yield starts a week after purchase.
func newHolding(userID, nftID uint, now time.Time) models.UserNFT {
	return models.UserNFT{
		UserID:             userID,
		NFTID:              nftID,
		PurchaseDate:       now,
		OperationStartDate: DateOnly(now).AddDate(0, 0, models.OperationDelayDays),
		Status:             models.HoldingStatusWaiting,
	}
}

// PurchaseNFT buys a regular catalog NFT for userID and records the purchase.
func PurchaseNFT(ctx context.Context, db *gorm.DB, userID, nftID uint, now time.Time) (*models.UserNFT, error) {
	var holding models.UserNFT
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nft models.NFT
		if err := tx.First(&nft, nftID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("nft %d not found", nftID)
			}
			return err
		}
		if nft.IsSpecial {
			return ErrForbidden.Withf("nft %d cannot be purchased", nftID)
		}

		holding = newHolding(userID, nft.ID, now)
		if err := tx.Create(&holding).Error; err != nil {
			return err
		}
		holding.NFT = &nft

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Type:        models.TransactionTypePurchase,
			Amount:      nft.Price,
			Description: fmt.Sprintf("Purchase: %s", nft.Name),
		}).Error
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return &holding, nil
}

// AssignSpecialNFT grants a special NFT to userID. Only special NFTs can be
// assigned this way.
func AssignSpecialNFT(ctx context.Context, db *gorm.DB, userID, nftID uint, now time.Time) (*models.UserNFT, error) {
	var holding models.UserNFT
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("user %d not found", userID)
			}
			return err
		}

		var nft models.NFT
		if err := tx.Where("id = ? AND is_special = ?", nftID, true).First(&nft).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrValidation.Withf("nft %d is not a special nft or does not exist", nftID)
			}
			return err
		}

		holding = newHolding(user.ID, nft.ID, now)
		if err := tx.Create(&holding).Error; err != nil {
			return err
		}
		holding.NFT = &nft

		return tx.Create(&models.Transaction{
			UserID:      user.ID,
			Type:        models.TransactionTypeSpecialNFT,
			Amount:      nft.Price,
			Description: fmt.Sprintf("Special NFT assigned: %s", nft.Name),
		}).Error
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return &holding, nil
}
