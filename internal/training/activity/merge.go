package activity

import (
	"sort"
)

// Key identifies one logical per-day, per-sport record.
func Key(date CivilDate, sport Sport) string {
	return date.String() + "|" + sport.String()
}

// Merge combines the planned and actual streams into one record per (date, sport).
//
// Planned entries go in first; a later planned entry with the same key replaces the earlier one
// but keeps its position. An actual entry for a planned key produces a new merged activity that
// takes the actual's fields; planned duration, planned workout, title and status fall back to the
// planned values when the actual leaves them empty. An actual without a planned counterpart is
// kept as actual_only, and a later actual with the same key replaces it. Activities with an
// invalid date are never keyed: each is appended with its own provenance. The result follows
// insertion order and is not sorted by date.
func Merge(planned, actuals []Activity) []Activity {
	merged := make([]Activity, 0, len(planned)+len(actuals))
	slots := make(map[string]int, len(planned)+len(actuals))

	put := func(a Activity) {
		if !a.Date.IsValid() {
			merged = append(merged, a)
			return
		}
		key := a.Key()
		if i, exists := slots[key]; exists {
			merged[i] = a
			return
		}
		slots[key] = len(merged)
		merged = append(merged, a)
	}

	for _, p := range planned {
		p = p.clone()
		p.Source = SourcePlan
		put(p)
	}

	for _, act := range actuals {
		i, ok := -1, false
		if act.Date.IsValid() {
			i, ok = slots[act.Key()]
		}
		if !ok || merged[i].Source == SourceActualOnly {
			standalone := act.clone()
			standalone.Source = SourceActualOnly
			put(standalone)
			continue
		}
		put(mergeInto(merged[i], act))
	}

	return merged
}

func mergeInto(planned, actual Activity) Activity {
	m := actual.clone()
	m.Source = SourceMerged
	if m.PlannedDurationMinutes == 0 {
		m.PlannedDurationMinutes = planned.PlannedDurationMinutes
	}
	if m.PlannedWorkout == "" {
		m.PlannedWorkout = planned.PlannedWorkout
	}
	if m.Title == "" {
		m.Title = planned.Title
	}
	if m.Status == "" {
		m.Status = planned.Status
	}
	return m
}

// SortByDate returns a copy of activities sorted ascending by date.
// The sort is stable, so same-day activities keep their relative order.
func SortByDate(activities []Activity) []Activity {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// FilterValid returns the activities with a resolvable date.
func FilterValid(activities []Activity) []Activity {
	valid := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if a.Date.IsValid() {
			valid = append(valid, a)
		}
	}
	return valid
}

// FilterRange returns the activities dated within [from, to]. An invalid bound is open.
func FilterRange(activities []Activity, from, to CivilDate) []Activity {
	filtered := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if !a.Date.IsValid() {
			continue
		}
		if from.IsValid() && a.Date.Before(from) {
			continue
		}
		if to.IsValid() && a.Date.After(to) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}
