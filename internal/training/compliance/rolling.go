package compliance

import (
	"github.com/2beens/trainingdash/internal/training/activity"
)

// StandardWindows are the rolling trend window lengths in days.
var StandardWindows = []int{7, 30, 90, 180, 365}

const rollingStepDays = 7

// RollingPoint is the duration compliance of the window ending at Date.
type RollingPoint struct {
	Date           activity.CivilDate `json:"date"`
	WindowDays     int                `json:"windowDays"`
	PlannedMinutes float64            `json:"plannedMinutes"`
	ActualMinutes  float64            `json:"actualMinutes"`
	Score
}

// Rolling recomputes duration compliance over [d-windowDays+1, d] for steps
// points spaced one week apart, the last one at asOf. Points are ascending.
func Rolling(activities []activity.Activity, windowDays int, asOf activity.CivilDate, steps int) []RollingPoint {
	if windowDays <= 0 || !asOf.IsValid() {
		return []RollingPoint{}
	}
	if steps <= 0 {
		steps = 1
	}

	points := make([]RollingPoint, steps)
	for i := 0; i < steps; i++ {
		end := asOf.AddDays(-rollingStepDays * (steps - 1 - i))
		start := end.AddDays(-(windowDays - 1))

		p := RollingPoint{
			Date:       end,
			WindowDays: windowDays,
		}
		for _, a := range activities {
			if !a.Date.IsValid() || a.Date.Before(start) || a.Date.After(end) {
				continue
			}
			p.PlannedMinutes += a.PlannedDurationMinutes
			p.ActualMinutes += a.ActualDurationMinutes
		}
		p.Score = NewScore(p.ActualMinutes, p.PlannedMinutes)
		points[i] = p
	}
	return points
}
