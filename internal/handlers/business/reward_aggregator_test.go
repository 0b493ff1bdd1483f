package business

import (
	"slices"
	"testing"

	"shoguntrade/internal/models"
	"shoguntrade/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reward(t *testing.T, date, amount, status string) models.Reward {
	return models.Reward{Date: testutil.Date(t, date), Amount: testutil.Dec(amount), Status: status}
}

func TestWeekOf(t *testing.T) {
	t.Run("wednesday falls in its own monday to friday window", func(t *testing.T) {
		w := WeekOf(testutil.Date(t, "2024-01-10"))
		assert.Equal(t, "2024-01-08", w.Start.Format(dateLayout))
		assert.Equal(t, "2024-01-12", w.End.Format(dateLayout))
		assert.True(t, w.Contains(testutil.Date(t, "2024-01-10")))
	})

	t.Run("monday and friday are the bounds", func(t *testing.T) {
		assert.Equal(t, "2024-01-08_2024-01-12", WeekOf(testutil.Date(t, "2024-01-08")).Key())
		assert.Equal(t, "2024-01-08_2024-01-12", WeekOf(testutil.Date(t, "2024-01-12")).Key())
	})

	t.Run("sunday belongs to the preceding week", func(t *testing.T) {
		assert.Equal(t, "2024-01-08_2024-01-12", WeekOf(testutil.Date(t, "2024-01-14")).Key())
	})

	t.Run("saturday maps to the preceding week but lies outside it", func(t *testing.T) {
		w := WeekOf(testutil.Date(t, "2024-01-13"))
		assert.Equal(t, "2024-01-08_2024-01-12", w.Key())
		assert.False(t, w.Contains(testutil.Date(t, "2024-01-13")))
	})
}

func TestParseWeek(t *testing.T) {
	t.Run("key form", func(t *testing.T) {
		w, err := ParseWeekKey("2024-01-08_2024-01-12")
		require.NoError(t, err)
		assert.Equal(t, testutil.Date(t, "2024-01-08"), w.Start)
		assert.Equal(t, testutil.Date(t, "2024-01-12"), w.End)
	})

	t.Run("malformed key", func(t *testing.T) {
		_, err := ParseWeekKey("2024-01-08")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := ParseWeekRange("2024-13-01", "2024-01-12")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ParseWeekRange("2024-01-12", "2024-01-08")
		assert.ErrorIs(t, err, ErrInvalidRange)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestGroupByWeek(t *testing.T) {
	t.Run("window total is the sum of its records", func(t *testing.T) {
		rewards := []models.Reward{
			reward(t, "2024-01-08", "10", models.RewardStatusCalculated),
			reward(t, "2024-01-10", "20", models.RewardStatusPaid),
			reward(t, "2024-01-12", "30", models.RewardStatusPending),
			reward(t, "2024-01-15", "5", models.RewardStatusCalculated),
		}

		weeks := slices.Collect(GroupByWeek(rewards))
		require.Len(t, weeks, 2)

		assert.Equal(t, "2024-01-15_2024-01-19", weeks[0].Week)
		assert.True(t, weeks[0].Total.Equal(testutil.Dec("5")))

		assert.Equal(t, "2024-01-08_2024-01-12", weeks[1].Week)
		assert.Equal(t, "2024-01-08", weeks[1].Start)
		assert.Equal(t, "2024-01-12", weeks[1].End)
		assert.True(t, weeks[1].Total.Equal(testutil.Dec("60")))
		assert.Len(t, weeks[1].Rewards, 3)
	})

	t.Run("newest week first regardless of input order", func(t *testing.T) {
		rewards := []models.Reward{
			reward(t, "2024-01-01", "1", models.RewardStatusCalculated),
			reward(t, "2024-01-17", "1", models.RewardStatusCalculated),
			reward(t, "2024-01-09", "1", models.RewardStatusCalculated),
		}
		var keys []string
		for b := range GroupByWeek(rewards) {
			keys = append(keys, b.Week)
		}
		assert.Equal(t, []string{"2024-01-15_2024-01-19", "2024-01-08_2024-01-12", "2024-01-01_2024-01-05"}, keys)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, slices.Collect(GroupByWeek(nil)))
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		rewards := []models.Reward{
			reward(t, "2024-01-01", "1", models.RewardStatusCalculated),
			reward(t, "2024-01-08", "1", models.RewardStatusCalculated),
		}
		n := 0
		for range GroupByWeek(rewards) {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}
