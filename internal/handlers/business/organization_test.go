package business

import (
	"context"
	"testing"

	"shoguntrade/internal/models"
	"shoguntrade/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orgFixture struct {
	db         *gorm.DB
	a, b, c, d *models.User
}

// newOrgFixture builds A -> {B, C}, B -> D holding 50, 100, 200 and 300.
func newOrgFixture(t *testing.T) *orgFixture {
	db := testutil.NewTestDB(t)
	f := &orgFixture{db: db}
	f.a = testutil.CreateUser(t, db, "a", nil)
	f.b = testutil.CreateUser(t, db, "b", &f.a.ID)
	f.c = testutil.CreateUser(t, db, "c", &f.a.ID)
	f.d = testutil.CreateUser(t, db, "d", &f.b.ID)

	for _, h := range []struct {
		user  *models.User
		price string
	}{{f.a, "50"}, {f.b, "100"}, {f.c, "200"}, {f.d, "300"}} {
		nft := testutil.CreateNFT(t, db, "nft-"+h.user.Username, h.price, "0.01", false)
		testutil.CreateHolding(t, db, h.user.ID, nft.ID)
	}
	return f
}

func TestComputeOrganization(t *testing.T) {
	t.Run("line totals include the whole downline", func(t *testing.T) {
		f := newOrgFixture(t)

		org, err := ComputeOrganization(context.Background(), f.db, f.a.ID)
		require.NoError(t, err)

		require.Len(t, org.Organization, 2)
		assert.Equal(t, f.b.ID, org.Organization[0].ID)
		assert.True(t, org.Organization[0].LineTotal.Equal(testutil.Dec("400")))
		assert.True(t, org.Organization[0].TotalInvestment.Equal(testutil.Dec("100")))
		assert.Equal(t, f.c.ID, org.Organization[1].ID)
		assert.True(t, org.Organization[1].LineTotal.Equal(testutil.Dec("200")))

		assert.True(t, org.Stats.MaxLine.Equal(testutil.Dec("400")))
		assert.True(t, org.Stats.OtherLinesTotal.Equal(testutil.Dec("200")))
		assert.Equal(t, 2, org.Stats.DirectReferrals)
	})

	t.Run("special NFTs count as investment", func(t *testing.T) {
		f := newOrgFixture(t)
		special := testutil.CreateNFT(t, f.db, "Shogun Seal", "1000", "0.01", true)
		testutil.CreateHolding(t, f.db, f.c.ID, special.ID)

		org, err := ComputeOrganization(context.Background(), f.db, f.a.ID)
		require.NoError(t, err)
		assert.Equal(t, f.c.ID, org.Organization[0].ID)
		assert.True(t, org.Stats.MaxLine.Equal(testutil.Dec("1200")))
		assert.True(t, org.Stats.OtherLinesTotal.Equal(testutil.Dec("400")))
	})

	t.Run("leaf user has an empty organization", func(t *testing.T) {
		f := newOrgFixture(t)
		org, err := ComputeOrganization(context.Background(), f.db, f.d.ID)
		require.NoError(t, err)
		assert.Empty(t, org.Organization)
		assert.True(t, org.Stats.MaxLine.IsZero())
		assert.True(t, org.Stats.OtherLinesTotal.IsZero())
		assert.Zero(t, org.Stats.DirectReferrals)
	})

	t.Run("referral cycle is detected", func(t *testing.T) {
		f := newOrgFixture(t)
		require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", f.a.ID).Update("referrer_id", f.d.ID).Error)

		_, err := ComputeOrganization(context.Background(), f.db, f.a.ID)
		assert.ErrorIs(t, err, ErrCycleDetected)
		assert.Equal(t, KindCycleDetected, KindOf(err))
	})
}

func TestLineTotal(t *testing.T) {
	tree := &ReferralTree{
		users:      map[uint]referralNode{1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3}},
		children:   map[uint][]uint{1: {2}, 2: {3}, 3: {2}},
		investment: decimalMap{}.build(),
	}

	_, err := tree.LineTotal(2, 1)
	assert.ErrorIs(t, err, ErrCycleDetected)

	acyclic := &ReferralTree{
		children:   map[uint][]uint{1: {2, 3}},
		investment: decimalMap{1: "1", 2: "2", 3: "3"}.build(),
	}
	total, err := acyclic.LineTotal(1)
	require.NoError(t, err)
	assert.True(t, total.Equal(testutil.Dec("6")))
	assert.Equal(t, 2, acyclic.DirectReferrals(1))
	assert.True(t, acyclic.Investment(4).IsZero())
}
