package handlers

import (
	"context"
	"sync"
	"testing"

	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/models"
	"shoguntrade/internal/testutil"
	dbconfig "shoguntrade/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetRewardService(t *testing.T) {
	t.Helper()
	saved := dbconfig.DB
	rewardMu.Lock()
	rewardService = nil
	rewardMu.Unlock()
	t.Cleanup(func() {
		dbconfig.DB = saved
		rewardMu.Lock()
		rewardService = nil
		rewardMu.Unlock()
	})
}

func TestRewardsFollowsCurrentStoreUntilInitialized(t *testing.T) {
	resetRewardService(t)

	dbconfig.DB = testutil.NewTestDB(t)
	_ = rewards()

	// a later store swap must be honoured by the uninitialized fallback
	db := testutil.NewTestDB(t)
	dbconfig.DB = db
	user := testutil.CreateUser(t, db, "alice", nil)
	nft := testutil.CreateNFT(t, db, "Katana", "1000", "0.01", false)
	holding := testutil.CreateHolding(t, db, user.ID, nft.ID)
	testutil.CreateReward(t, db, holding.ID, testutil.Date(t, "2024-01-08"), "10", models.RewardStatusCalculated)

	req, err := rewards().SubmitRequest(context.Background(), user.ID,
		testutil.Date(t, "2024-01-08"), testutil.Date(t, "2024-01-12"), models.RewardOptionAirdrop)
	require.NoError(t, err)
	assert.True(t, req.TotalAmount.Equal(testutil.Dec("10")))
}

func TestInitRewardServiceConcurrentWithReaders(t *testing.T) {
	resetRewardService(t)
	dbconfig.DB = testutil.NewTestDB(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			InitRewardService(business.DefaultFeePolicy(), nil)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, rewards())
		}()
	}
	wg.Wait()

	rewardMu.RLock()
	defer rewardMu.RUnlock()
	assert.NotNil(t, rewardService)
}
