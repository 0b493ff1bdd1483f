package business

import (
	"context"
	"testing"

	"shoguntrade/internal/auth"
	"shoguntrade/internal/models"
	"shoguntrade/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration(username string, referrer *uint) RegisterInput {
	return RegisterInput{
		Name:       username,
		Username:   username,
		Email:      username + "@example.com",
		Password:   "secret",
		Phone:      "090",
		ReferrerID: referrer,
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	root := testutil.CreateUser(t, db, "root", nil)

	t.Run("creates a member under the referrer", func(t *testing.T) {
		user, err := RegisterUser(ctx, db, registration("newbie", &root.ID))
		require.NoError(t, err)
		require.NotNil(t, user.ReferrerID)
		assert.Equal(t, root.ID, *user.ReferrerID)
		assert.Equal(t, models.WalletTypeOther, user.WalletType)
		assert.True(t, auth.CheckPassword(user.Password, "secret"))
	})

	t.Run("referrer is required and must exist", func(t *testing.T) {
		_, err := RegisterUser(ctx, db, registration("orphan", nil))
		assert.ErrorIs(t, err, ErrValidation)

		missing := uint(999)
		_, err = RegisterUser(ctx, db, registration("ghost", &missing))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("username and email are unique", func(t *testing.T) {
		_, err := RegisterUser(ctx, db, registration("root", &root.ID))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		_, err := RegisterUser(ctx, db, RegisterInput{ReferrerID: &root.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required fields")
	})
}

func TestImportUsers(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	root := testutil.CreateUser(t, db, "root", nil)

	first := registration("imp1", &root.ID)
	chained := registration("imp2", nil)
	duplicate := registration("root", nil)
	missing := uint(999)
	badReferrer := registration("imp3", &missing)

	result, err := ImportUsers(ctx, db, []RegisterInput{first, duplicate, badReferrer})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "root", result.Errors[0].User)

	// a later batch may refer to users imported earlier
	var imp1 models.User
	require.NoError(t, db.Where("username = ?", "imp1").First(&imp1).Error)
	chained.ReferrerID = &imp1.ID
	result, err = ImportUsers(ctx, db, []RegisterInput{chained})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	t.Run("defaults when nothing is stored", func(t *testing.T) {
		s, err := GetSettings(ctx, db)
		require.NoError(t, err)
		assert.False(t, s.MaintenanceMode)
		assert.Equal(t, 20, s.CompanyProfitPercentage)
	})

	t.Run("partial updates keep other fields", func(t *testing.T) {
		on := true
		s, err := UpdateSettings(ctx, db, SettingsUpdate{MaintenanceMode: &on})
		require.NoError(t, err)
		assert.True(t, s.MaintenanceMode)
		assert.Equal(t, 20, s.CompanyProfitPercentage)

		zero := 0
		s, err = UpdateSettings(ctx, db, SettingsUpdate{CompanyProfitPercentage: &zero})
		require.NoError(t, err)
		assert.True(t, s.MaintenanceMode)
		assert.Equal(t, 0, s.CompanyProfitPercentage)

		inMaintenance, err := InMaintenance(ctx, db)
		require.NoError(t, err)
		assert.True(t, inMaintenance)
	})

	t.Run("percentage is bounded", func(t *testing.T) {
		tooHigh := 101
		_, err := UpdateSettings(ctx, db, SettingsUpdate{CompanyProfitPercentage: &tooHigh})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
