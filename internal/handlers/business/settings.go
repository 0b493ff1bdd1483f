package business

import (
	"context"
	"errors"

	"shoguntrade/internal/models"

	"gorm.io/gorm"
)

// SettingsUpdate holds the fields an admin may change. Nil fields are kept.
type SettingsUpdate struct {
	MaintenanceMode         *bool `json:"maintenance_mode"`
	CompanyProfitPercentage *int  `json:"company_profit_percentage"`
}

func defaultSettings() models.SystemSettings {
	return models.SystemSettings{CompanyProfitPercentage: models.DefaultCompanyProfitPercentage}
}

// GetSettings returns the system settings, or the defaults when none are stored.
func GetSettings(ctx context.Context, db *gorm.DB) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := db.WithContext(ctx).Order("id asc").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d := defaultSettings()
		return &d, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings applies update to the single settings row, creating it first
// when absent.
func UpdateSettings(ctx context.Context, db *gorm.DB, update SettingsUpdate) (*models.SystemSettings, error) {
	if p := update.CompanyProfitPercentage; p != nil && (*p < 0 || *p > 100) {
		return nil, ErrValidation.Withf("company_profit_percentage must be between 0 and 100")
	}

	var settings models.SystemSettings
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Order("id asc").First(&settings).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = defaultSettings()
			err = tx.Create(&settings).Error
		}
		if err != nil {
			return err
		}

		changes := map[string]interface{}{}
		if update.MaintenanceMode != nil {
			changes["maintenance_mode"] = *update.MaintenanceMode
		}
		if update.CompanyProfitPercentage != nil {
			changes["company_profit_percentage"] = *update.CompanyProfitPercentage
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&settings).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&settings, settings.ID).Error
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return &settings, nil
}

// InMaintenance reports whether maintenance mode is on.
func InMaintenance(ctx context.Context, db *gorm.DB) (bool, error) {
	settings, err := GetSettings(ctx, db)
	if err != nil {
		return false, err
	}
	return settings.MaintenanceMode, nil
}
