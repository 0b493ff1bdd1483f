package business

import (
	"fmt"
	"iter"
	"sort"
	"strings"
	"time"

	"shoguntrade/internal/models"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Week is a Monday–Friday reward window, both ends inclusive.
type Week struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeekBucket groups the rewards of one week.
type WeekBucket struct {
	Week    string          `json:"week"`
	Start   string          `json:"start"`
	End     string          `json:"end"`
	Total   decimal.Decimal `json:"total"`
	Rewards []models.Reward `json:"rewards"`
}

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekOf returns the Monday–Friday window keyed by d. Sunday counts as day 7,
// so Saturday and Sunday map to the window of the preceding Monday.
func WeekOf(d time.Time) Week {
	day := DateOnly(d)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := day.AddDate(0, 0, -(weekday - 1))
	return Week{Start: monday, End: monday.AddDate(0, 0, 4)}
}

// Key renders the week as "YYYY-MM-DD_YYYY-MM-DD".
func (w Week) Key() string {
	return w.Start.Format(dateLayout) + "_" + w.End.Format(dateLayout)
}

// Contains reports whether d falls inside the window.
func (w Week) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(w.Start) && !day.After(w.End)
}

// ParseWeekKey parses the "start_end" form used by the rewards page.
func ParseWeekKey(key string) (Week, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 {
		return Week{}, ErrInvalidRange.Withf("invalid week %q", key)
	}
	return ParseWeekRange(parts[0], parts[1])
}

// ParseWeekRange parses two YYYY-MM-DD dates and checks start <= end.
func ParseWeekRange(start, end string) (Week, error) {
	s, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return Week{}, ErrInvalidRange.With(fmt.Errorf("week start: %w", err))
	}
	e, err := time.Parse(dateLayout, strings.TrimSpace(end))
	if err != nil {
		return Week{}, ErrInvalidRange.With(fmt.Errorf("week end: %w", err))
	}
	if s.After(e) {
		return Week{}, ErrInvalidRange.Withf("week start %s is after week end %s", start, end)
	}
	return Week{Start: s, End: e}, nil
}

// GroupByWeek buckets rewards by WeekOf(date), newest week first. The
// total of a bucket covers every record in it regardless of status.
// The sequence is computed on iteration and can be ranged over repeatedly.
func GroupByWeek(rewards []models.Reward) iter.Seq[WeekBucket] {
	return func(yield func(WeekBucket) bool) {
		buckets := make(map[time.Time]*WeekBucket)
		for _, r := range rewards {
			w := WeekOf(r.Date)
			b, ok := buckets[w.Start]
			if !ok {
				b = &WeekBucket{
					Week:  w.Key(),
					Start: w.Start.Format(dateLayout),
					End:   w.End.Format(dateLayout),
					Total: decimal.Zero,
				}
				buckets[w.Start] = b
			}
			b.Total = b.Total.Add(r.Amount)
			b.Rewards = append(b.Rewards, r)
		}

		starts := make([]time.Time, 0, len(buckets))
		for s := range buckets {
			starts = append(starts, s)
		}
		sort.Slice(starts, func(i, j int) bool { return starts[i].After(starts[j]) })

		for _, s := range starts {
			if !yield(*buckets[s]) {
				return
			}
		}
	}
}
