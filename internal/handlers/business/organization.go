package business

import (
	"context"
	"sort"

	"shoguntrade/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrganizationMember is a direct referral with the investment of its line.
type OrganizationMember struct {
	ID              uint            `json:"id"`
	Username        string          `json:"username"`
	Name            string          `json:"name"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrganizationStats summarises the lines of a user.
type OrganizationStats struct {
	MaxLine         decimal.Decimal `json:"max_line"`
	OtherLinesTotal decimal.Decimal `json:"other_lines_total"`
	DirectReferrals int             `json:"direct_referrals"`
}

// Organization is the downline view of one user.
type Organization struct {
	Organization []OrganizationMember `json:"organization"`
	Stats        OrganizationStats    `json:"stats"`
}

type referralNode struct {
	ID         uint
	ReferrerID *uint
	Username   string
	Name       string
}

type holdingPrice struct {
	UserID uint
	Price  decimal.Decimal
}

// ReferralTree is an in-memory snapshot of the referral forest and the
// investment held by each user.
type ReferralTree struct {
	users      map[uint]referralNode
	children   map[uint][]uint
	investment map[uint]decimal.Decimal
}

// LoadReferralTree reads every user and holding price in one snapshot.
func LoadReferralTree(ctx context.Context, db *gorm.DB) (*ReferralTree, error) {
	var (
		nodes  []referralNode
		prices []holdingPrice
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Select("id", "referrer_id", "username", "name").
			Order("id asc").
			Scan(&nodes).Error; err != nil {
			return err
		}
		return tx.Table("user_nfts").
			Select("user_nfts.user_id AS user_id, nfts.price AS price").
			Joins("JOIN nfts ON nfts.id = user_nfts.nft_id").
			Scan(&prices).Error
	})
	if err != nil {
		return nil, err
	}

	tree := &ReferralTree{
		users:      make(map[uint]referralNode, len(nodes)),
		children:   make(map[uint][]uint),
		investment: make(map[uint]decimal.Decimal),
	}
	for _, n := range nodes {
		tree.users[n.ID] = n
		if n.ReferrerID != nil {
			tree.children[*n.ReferrerID] = append(tree.children[*n.ReferrerID], n.ID)
		}
	}
	for _, p := range prices {
		tree.investment[p.UserID] = tree.investment[p.UserID].Add(p.Price)
	}
	return tree, nil
}

// Investment returns the summed NFT price held by userID, special NFTs included.
func (t *ReferralTree) Investment(userID uint) decimal.Decimal {
	return t.investment[userID]
}

// LineTotal sums the investment of root and all of its descendants. It
// fails with ErrCycleDetected when the walk reaches a user twice or walks
// back into any id in exclude.
func (t *ReferralTree) LineTotal(root uint, exclude ...uint) (decimal.Decimal, error) {
	visited := make(map[uint]bool, len(exclude)+1)
	for _, id := range exclude {
		visited[id] = true
	}

	total := decimal.Zero
	stack := []uint{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return decimal.Zero, ErrCycleDetected.Withf("referral cycle through user %d", id)
		}
		visited[id] = true
		total = total.Add(t.investment[id])
		stack = append(stack, t.children[id]...)
	}
	return total, nil
}

// Organization computes the direct referrals of userID ordered by line
// total, largest first, with the max-line / other-lines split.
func (t *ReferralTree) Organization(userID uint) (*Organization, error) {
	direct := t.children[userID]
	members := make([]OrganizationMember, 0, len(direct))
	for _, id := range direct {
		line, err := t.LineTotal(id, userID)
		if err != nil {
			return nil, err
		}
		u := t.users[id]
		members = append(members, OrganizationMember{
			ID:              u.ID,
			Username:        u.Username,
			Name:            u.Name,
			TotalInvestment: t.investment[id],
			LineTotal:       line,
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		if c := members[i].LineTotal.Cmp(members[j].LineTotal); c != 0 {
			return c > 0
		}
		return members[i].ID < members[j].ID
	})

	stats := OrganizationStats{
		MaxLine:         decimal.Zero,
		OtherLinesTotal: decimal.Zero,
		DirectReferrals: len(members),
	}
	for i, m := range members {
		if i == 0 {
			stats.MaxLine = m.LineTotal
			continue
		}
		stats.OtherLinesTotal = stats.OtherLinesTotal.Add(m.LineTotal)
	}

	return &Organization{Organization: members, Stats: stats}, nil
}

// ComputeOrganization loads a snapshot and returns the organization of userID.
func ComputeOrganization(ctx context.Context, db *gorm.DB, userID uint) (*Organization, error) {
	tree, err := LoadReferralTree(ctx, db)
	if err != nil {
		return nil, err
	}
	return tree.Organization(userID)
}

// DirectReferrals returns how many users userID referred.
func (t *ReferralTree) DirectReferrals(userID uint) int {
	return len(t.children[userID])
}
