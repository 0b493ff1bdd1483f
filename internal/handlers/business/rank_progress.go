package business

import (
	"context"
	"errors"
	"time"

	"shoguntrade/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// RankProgress reports how far a user is from the next rank.
type RankProgress struct {
	CurrentRank        *models.MLMRank   `json:"current_rank"`
	NextRank           *models.MLMRank   `json:"next_rank"`
	Stats              OrganizationStats `json:"stats"`
	MaxLineProgress    float64           `json:"max_line_progress"`
	OtherLinesProgress float64           `json:"other_lines_progress"`
}

// ListRanks returns the rank catalog in progression order.
func ListRanks(ctx context.Context, db *gorm.DB) ([]models.MLMRank, error) {
	var ranks []models.MLMRank
	if err := db.WithContext(ctx).Order("min_investment asc").Order("id asc").Find(&ranks).Error; err != nil {
		return nil, err
	}
	return ranks, nil
}

// CurrentRank returns the most recent rank assignment of userID, or nil.
func CurrentRank(ctx context.Context, db *gorm.DB, userID uint) (*models.UserRank, error) {
	var ur models.UserRank
	err := db.WithContext(ctx).
		Preload("Rank").
		Where("user_id = ?", userID).
		Order("effective_date desc").
		Order("id desc").
		First(&ur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// NextRank picks the rank after current in ranks. Without a current rank
// the first rank is next. A current rank that is last, or not in ranks,
// has no next rank.
func NextRank(ranks []models.MLMRank, current *models.MLMRank) *models.MLMRank {
	if current == nil {
		if len(ranks) == 0 {
			return nil
		}
		return &ranks[0]
	}
	for i := range ranks {
		if ranks[i].ID == current.ID {
			if i+1 < len(ranks) {
				return &ranks[i+1]
			}
			return nil
		}
	}
	return nil
}

// ProgressPercent returns value/requirement as a percentage clamped to
// [0, 100]. A requirement of zero or less counts as met.
func ProgressPercent(value, requirement decimal.Decimal) float64 {
	if !requirement.IsPositive() {
		return 100
	}
	pct := value.Div(requirement).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	if pct.IsNegative() {
		pct = decimal.Zero
	}
	return pct.InexactFloat64()
}

// EvaluateRankProgress combines organization stats with the rank catalog.
func EvaluateRankProgress(stats OrganizationStats, ranks []models.MLMRank, current *models.MLMRank) RankProgress {
	progress := RankProgress{
		CurrentRank: current,
		NextRank:    NextRank(ranks, current),
		Stats:       stats,
	}
	if progress.NextRank != nil {
		progress.MaxLineProgress = ProgressPercent(stats.MaxLine, progress.NextRank.MaxLineRequirement)
		progress.OtherLinesProgress = ProgressPercent(stats.OtherLinesTotal, progress.NextRank.OtherLinesRequirement)
	}
	return progress
}

// ComputeRankProgress evaluates userID against ranks, which must be ordered
// by ascending min_investment.
func ComputeRankProgress(ctx context.Context, db *gorm.DB, userID uint, ranks []models.MLMRank) (*RankProgress, error) {
	org, err := ComputeOrganization(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	ur, err := CurrentRank(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	var current *models.MLMRank
	if ur != nil {
		current = ur.Rank
	}
	progress := EvaluateRankProgress(org.Stats, ranks, current)
	return &progress, nil
}

// AssignRank records a rank assignment for userID effective from the given day.
func AssignRank(ctx context.Context, db *gorm.DB, userID, rankID uint, effective time.Time) (*models.UserRank, error) {
	assignment := &models.UserRank{UserID: userID, RankID: rankID, EffectiveDate: DateOnly(effective)}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("user %d not found", userID)
			}
			return err
		}
		var rank models.MLMRank
		if err := tx.First(&rank, rankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound.Withf("rank %d not found", rankID)
			}
			return err
		}
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		assignment.Rank = &rank
		return nil
	})
	if err != nil {
		return nil, asTransactionFailed(err)
	}
	return assignment, nil
}
