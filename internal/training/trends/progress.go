package trends

import (
	"github.com/2beens/trainingdash/internal/training/activity"
)

type SportProgress struct {
	Sport          activity.Sport `json:"sport"`
	PlannedMinutes float64        `json:"plannedMinutes"`
	ActualMinutes  float64        `json:"actualMinutes"`
	Planned        int            `json:"planned"`
	Completed      int            `json:"completed"`
}

// Progress is the planned and done volume of the current Monday-start week.
type Progress struct {
	WeekStart      activity.CivilDate `json:"weekStart"`
	WeekEnd        activity.CivilDate `json:"weekEnd"`
	Sports         []SportProgress    `json:"sports"`
	PlannedMinutes float64            `json:"plannedMinutes"`
	ActualMinutes  float64            `json:"actualMinutes"`
	// DaysElapsed counts the days of the week up to and including today.
	DaysElapsed int `json:"daysElapsed"`
}

var progressSports = []activity.Sport{
	activity.SportRun,
	activity.SportBike,
	activity.SportSwim,
	activity.SportStrength,
	activity.SportOther,
}

// WeekProgress summarizes the Monday-to-Sunday week containing today.
// Sports with no activity that week are left out.
func WeekProgress(activities []activity.Activity, today activity.CivilDate) Progress {
	start := WeekStartMonday(today)
	end := start.AddDays(6)

	perSport := map[activity.Sport]*SportProgress{}
	progress := Progress{
		WeekStart:   start,
		WeekEnd:     end,
		Sports:      []SportProgress{},
		DaysElapsed: today.DaysSince(start) + 1,
	}

	for _, a := range activities {
		if !a.Date.IsValid() || a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		sp, ok := perSport[a.Sport]
		if !ok {
			sp = &SportProgress{Sport: a.Sport}
			perSport[a.Sport] = sp
		}
		sp.PlannedMinutes += a.PlannedDurationMinutes
		sp.ActualMinutes += a.ActualDurationMinutes
		if a.PlannedDurationMinutes > 0 {
			sp.Planned++
			if a.IsCompleted() {
				sp.Completed++
			}
		}
		progress.PlannedMinutes += a.PlannedDurationMinutes
		progress.ActualMinutes += a.ActualDurationMinutes
	}

	for _, s := range progressSports {
		if sp, ok := perSport[s]; ok {
			progress.Sports = append(progress.Sports, *sp)
		}
	}
	return progress
}
