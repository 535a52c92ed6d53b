package refresh

import (
	"sort"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/timeutil"
)

// Categorize assigns each fixture to the bucket of its UTC calendar-day offset
// from now. Fixtures outside the scheme's range, without a usable kickoff, or
// inactive when the scheme excludes them are dropped. Every key in range is
// present, and each bucket is ordered by kickoff with ties kept in input order.
func Categorize(now time.Time, items []fixtures.Fixture, scheme Scheme) fixtures.Buckets {
	buckets := fixtures.NewBuckets(scheme.Keys(now)...)

	for _, item := range items {
		if item.UTCDate.IsZero() {
			continue
		}
		if scheme.ExcludeInactive && item.Status.Inactive() {
			continue
		}
		k := timeutil.DayOffset(now, item.UTCDate)
		if k < scheme.MinOffset || k > scheme.MaxOffset {
			continue
		}
		buckets.Add(scheme.Key(now, k), item)
	}

	for _, key := range buckets.Keys() {
		list := buckets.Get(key)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].UTCDate.Before(list[j].UTCDate)
		})
	}
	return buckets
}
