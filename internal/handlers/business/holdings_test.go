package business

import (
	"context"
	"testing"

	"shoguntrade/internal/models"
	"shoguntrade/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseNFT(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "buyer", nil)
	regular := testutil.CreateNFT(t, db, "Wakizashi", "500", "0.012", false)
	special := testutil.CreateNFT(t, db, "Shogun Seal", "10000", "0.01", true)

	t.Run("creates a waiting holding and a purchase entry", func(t *testing.T) {
		holding, err := PurchaseNFT(ctx, db, user.ID, regular.ID, testutil.Date(t, "2024-01-03"))
		require.NoError(t, err)
		assert.Equal(t, models.HoldingStatusWaiting, holding.Status)
		assert.Equal(t, "2024-01-10", holding.OperationStartDate.Format(dateLayout))

		var tx models.Transaction
		require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, models.TransactionTypePurchase).First(&tx).Error)
		assert.True(t, tx.Amount.Equal(testutil.Dec("500")))
		assert.Equal(t, "Purchase: Wakizashi", tx.Description)
	})

	t.Run("special NFTs cannot be bought", func(t *testing.T) {
		_, err := PurchaseNFT(ctx, db, user.ID, special.ID, testutil.Date(t, "2024-01-03"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown NFT", func(t *testing.T) {
		_, err := PurchaseNFT(ctx, db, user.ID, 999, testutil.Date(t, "2024-01-03"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssignSpecialNFT(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "vip", nil)
	regular := testutil.CreateNFT(t, db, "Wakizashi", "500", "0.012", false)
	special := testutil.CreateNFT(t, db, "Shogun Seal", "10000", "0.01", true)

	t.Run("grants the special NFT", func(t *testing.T) {
		holding, err := AssignSpecialNFT(ctx, db, user.ID, special.ID, testutil.Date(t, "2024-01-03"))
		require.NoError(t, err)
		assert.Equal(t, special.ID, holding.NFTID)

		var count int64
		require.NoError(t, db.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ?", user.ID, models.TransactionTypeSpecialNFT).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("regular NFTs are rejected", func(t *testing.T) {
		_, err := AssignSpecialNFT(ctx, db, user.ID, regular.ID, testutil.Date(t, "2024-01-03"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := AssignSpecialNFT(ctx, db, 999, special.ID, testutil.Date(t, "2024-01-03"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRunAccrual(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "holder", nil)
	nft := testutil.CreateNFT(t, db, "Katana", "1000", "0.01", false)
	_, err := PurchaseNFT(ctx, db, user.ID, nft.ID, testutil.Date(t, "2024-01-01"))
	require.NoError(t, err)

	t.Run("nothing accrues before the operation start", func(t *testing.T) {
		summary, err := RunAccrual(ctx, db, testutil.Date(t, "2024-01-05"))
		require.NoError(t, err)
		assert.Zero(t, summary.Activated)
		assert.Zero(t, summary.Created)
	})

	t.Run("operation start activates the holding and accrues", func(t *testing.T) {
		summary, err := RunAccrual(ctx, db, testutil.Date(t, "2024-01-08"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.Activated)
		assert.Equal(t, int64(1), summary.Created)

		var r models.Reward
		require.NoError(t, db.First(&r).Error)
		assert.True(t, r.Amount.Equal(testutil.Dec("10")))
		assert.Equal(t, models.RewardStatusCalculated, r.Status)
		assert.Equal(t, "2024-01-08", r.Date.Format(dateLayout))
	})

	t.Run("rerunning a day is a no-op", func(t *testing.T) {
		summary, err := RunAccrual(ctx, db, testutil.Date(t, "2024-01-08"))
		require.NoError(t, err)
		assert.Zero(t, summary.Created)

		var count int64
		require.NoError(t, db.Model(&models.Reward{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("weekends are skipped", func(t *testing.T) {
		for _, day := range []string{"2024-01-13", "2024-01-14"} {
			summary, err := RunAccrual(ctx, db, testutil.Date(t, day))
			require.NoError(t, err)
			assert.True(t, summary.Skipped, day)
		}
		var count int64
		require.NoError(t, db.Model(&models.Reward{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestFeePolicy(t *testing.T) {
	p := DefaultFeePolicy()

	t.Run("fee and net always add up to the total", func(t *testing.T) {
		for _, total := range []string{"60", "0.01", "123.45678901", "1000000"} {
			for _, wallet := range []string{models.WalletTypeEvo, models.WalletTypeOther, "unknown"} {
				fee, net := p.Split(testutil.Dec(total), wallet)
				assert.True(t, fee.Add(net).Equal(testutil.Dec(total)), "%s %s", total, wallet)
			}
		}
	})

	t.Run("rates per wallet type", func(t *testing.T) {
		_, net := p.Split(testutil.Dec("60"), models.WalletTypeOther)
		assert.True(t, net.Equal(testutil.Dec("55.2")))
		_, net = p.Split(testutil.Dec("100"), models.WalletTypeEvo)
		assert.True(t, net.Equal(testutil.Dec("94.5")))
	})

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, p.Validate())
		bad := FeePolicy{DefaultRate: testutil.Dec("-0.1")}
		assert.Error(t, bad.Validate())
	})
}
