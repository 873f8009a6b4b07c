package trends

import (
	"sort"

	"github.com/2beens/trainingdash/internal/training/activity"
)

// VolumeWeekRatio is the actual/planned minutes ratio a volume week must reach.
const VolumeWeekRatio = 0.90

// WeekEnding returns the Saturday that closes the week of d (weekday 0 is Sunday).
func WeekEnding(d activity.CivilDate) activity.CivilDate {
	return d.WeekEndingSaturday()
}

// WeekStartMonday returns the Monday that opens the week of d.
// Only the progress view uses Monday-start weeks.
func WeekStartMonday(d activity.CivilDate) activity.CivilDate {
	return d.WeekStartMonday()
}

// WeekBucket aggregates the activities of one Saturday-ending week.
type WeekBucket struct {
	WeekEnding     activity.CivilDate `json:"weekEnding"`
	Activities     int                `json:"activities"`
	PlannedMinutes float64            `json:"plannedMinutes"`
	ActualMinutes  float64            `json:"actualMinutes"`
	TSS            float64            `json:"tss"`
	// TotalCount counts activities with planned minutes.
	TotalCount int `json:"totalCount"`
	// CompletedCount counts planned activities with status COMPLETED.
	CompletedCount int  `json:"completedCount"`
	Missed         bool `json:"missed"`
}

// Buckets maps week-ending Saturdays to their bucket.
type Buckets map[activity.CivilDate]WeekBucket

// WeeklyBucket groups activities by week-ending Saturday. Activities with an
// invalid date are excluded.
func WeeklyBucket(activities []activity.Activity) Buckets {
	buckets := Buckets{}
	for _, a := range activities {
		if !a.Date.IsValid() {
			continue
		}
		key := WeekEnding(a.Date)
		b, ok := buckets[key]
		if !ok {
			b = WeekBucket{WeekEnding: key}
		}

		b.Activities++
		b.PlannedMinutes += a.PlannedDurationMinutes
		b.ActualMinutes += a.ActualDurationMinutes
		b.TSS += a.Metrics.TSS
		if a.PlannedDurationMinutes > 0 {
			b.TotalCount++
			if a.IsCompleted() {
				b.CompletedCount++
			}
		}
		if a.IsMissed() {
			b.Missed = true
		}

		buckets[key] = b
	}
	return buckets
}

// Keys returns the week keys in ascending order.
func (b Buckets) Keys() []activity.CivilDate {
	keys := make([]activity.CivilDate, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
	return keys
}

// Sorted returns the buckets in ascending week order.
func (b Buckets) Sorted() []WeekBucket {
	sorted := make([]WeekBucket, 0, len(b))
	for _, k := range b.Keys() {
		sorted = append(sorted, b[k])
	}
	return sorted
}

// WeekPredicate decides whether a week counts toward a streak.
type WeekPredicate func(b WeekBucket) bool

// PerfectWeek holds when every planned activity was completed and none was missed.
func PerfectWeek(b WeekBucket) bool {
	return b.TotalCount > 0 && b.CompletedCount == b.TotalCount && !b.Missed
}

// VolumeWeek holds when at least 90% of the planned minutes were done.
func VolumeWeek(b WeekBucket) bool {
	return b.PlannedMinutes > 0 && b.ActualMinutes/b.PlannedMinutes >= VolumeWeekRatio
}

// Streak counts consecutive qualifying weeks, scanning the existing weeks
// from newest to oldest. The week containing today and any later week are
// skipped; the scan stops at the first week failing pred.
func Streak(buckets Buckets, today activity.CivilDate, pred WeekPredicate) int {
	current := WeekEnding(today)
	keys := buckets.Keys()

	streak := 0
	for i := len(keys) - 1; i >= 0; i-- {
		if !keys[i].Before(current) {
			continue
		}
		if !pred(buckets[keys[i]]) {
			break
		}
		streak++
	}
	return streak
}
