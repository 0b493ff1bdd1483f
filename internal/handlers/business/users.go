package business

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"shoguntrade/internal/auth"
	"shoguntrade/internal/models"

	"gorm.io/gorm"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	ReferrerID  *uint  `json:"referrer_id"`
	UsdtAddress string `json:"usdt_address"`
	WalletType  string `json:"wallet_type"`
}

func (in RegisterInput) validate(requireReferrer bool) error {
	missing := []string{}
	for name, v := range map[string]string{
		"name": in.Name, "username": in.Username, "email": in.Email,
		"password": in.Password, "phone": in.Phone,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	if requireReferrer && (in.ReferrerID == nil || *in.ReferrerID == 0) {
		missing = append(missing, "referrer_id")
	}
	if len(missing) > 0 {
		return ErrValidation.Withf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// createUser inserts one user inside tx. The referrer must already exist,
// which keeps the referral graph acyclic.
func createUser(tx *gorm.DB, in RegisterInput, requireReferrer bool) (*models.User, error) {
	if err := in.validate(requireReferrer); err != nil {
		return nil, err
	}

	var taken int64
	if err := tx.Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrValidation.Withf("username or email already in use")
	}

	var referrerID *uint
	if in.ReferrerID != nil && *in.ReferrerID != 0 {
		var exists int64
		if err := tx.Model(&models.User{}).Where("id = ?", *in.ReferrerID).Count(&exists).Error; err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, ErrValidation.Withf("referrer %d does not exist", *in.ReferrerID)
		}
		id := *in.ReferrerID
		referrerID = &id
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	walletType := in.WalletType
	if walletType == "" {
		walletType = models.WalletTypeOther
	}

	user := &models.User{
		Name:        in.Name,
		Username:    in.Username,
		Email:       in.Email,
		Password:    hashed,
		Phone:       in.Phone,
		ReferrerID:  referrerID,
		UsdtAddress: in.UsdtAddress,
		WalletType:  walletType,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterUser creates a member under an existing referrer.
func RegisterUser(ctx context.Context, db *gorm.DB, in RegisterInput) (*models.User, error) {
	var user *models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = createUser(tx, in, true)
		return err
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return user, nil
}

// ImportRowError describes a row that could not be imported.
type ImportRowError struct {
	User  string `json:"user"`
	Error string `json:"error"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}

// ImportUsers bulk-inserts users in one transaction. A failing row is
// rolled back to its savepoint and reported; the others are kept. The
// referrer is optional here and may be a user imported earlier in the batch.
func ImportUsers(ctx context.Context, db *gorm.DB, rows []RegisterInput) (*ImportResult, error) {
	result := &ImportResult{Errors: []ImportRowError{}}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			sp := fmt.Sprintf("import_row_%d", i)
			if err := tx.SavePoint(sp).Error; err != nil {
				return err
			}
			if _, err := createUser(tx, row, false); err != nil {
				if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
					return rbErr
				}
				label := row.Username
				if label == "" {
					label = row.Email
				}
				result.Failed++
				result.Errors = append(result.Errors, ImportRowError{User: label, Error: err.Error()})
				continue
			}
			result.Success++
		}
		return nil
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return result, nil
}
