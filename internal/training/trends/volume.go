package trends

import (
	"github.com/2beens/trainingdash/internal/training/activity"
)

type Category string

const (
	CategoryRunning  Category = "running"
	CategoryCycling  Category = "cycling"
	CategorySwimming Category = "swimming"
	CategoryStrength Category = "strength"
	CategoryTotal    Category = "total"
)

// Categories lists the volume categories in display order.
var Categories = []Category{CategoryRunning, CategoryCycling, CategorySwimming, CategoryStrength, CategoryTotal}

const (
	VolumeOver     = "over"
	VolumeCaution  = "caution"
	VolumeUnder    = "under"
	VolumeOnTarget = "on_target"
)

// UnderThreshold is the week-over-week drop below which volume is under target.
const UnderThreshold = -0.20

// Thresholds are the per-category week-over-week increases above which volume is over target.
type Thresholds struct {
	Running  float64 `toml:"running" json:"running"`
	Cycling  float64 `toml:"cycling" json:"cycling"`
	Swimming float64 `toml:"swimming" json:"swimming"`
	Strength float64 `toml:"strength" json:"strength"`
	Total    float64 `toml:"total" json:"total"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Running:  0.05,
		Cycling:  0.10,
		Swimming: 0.10,
		Strength: 0.10,
		Total:    0.15,
	}
}

// For returns the over-target threshold of category.
func (t Thresholds) For(category Category) float64 {
	switch category {
	case CategoryRunning:
		return t.Running
	case CategoryCycling:
		return t.Cycling
	case CategorySwimming:
		return t.Swimming
	case CategoryStrength:
		return t.Strength
	default:
		return t.Total
	}
}

// PercentChange returns the signed fractional change from previous to current,
// or 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous
}

// VolumeStatus classifies a week-over-week change for category.
func VolumeStatus(change float64, category Category, thresholds Thresholds) string {
	switch {
	case change > thresholds.For(category):
		return VolumeOver
	case change > 0:
		return VolumeCaution
	case change < UnderThreshold:
		return VolumeUnder
	default:
		return VolumeOnTarget
	}
}

// VolumeChange compares the actual minutes of this week with last week.
type VolumeChange struct {
	Category        Category `json:"category"`
	CurrentMinutes  float64  `json:"currentMinutes"`
	PreviousMinutes float64  `json:"previousMinutes"`
	Change          float64  `json:"change"`
	Status          string   `json:"status"`
}

// VolumeChanges classifies the week-over-week actual minutes per category,
// comparing the Saturday-ending week containing today with the one before.
func VolumeChanges(activities []activity.Activity, today activity.CivilDate, thresholds Thresholds) []VolumeChange {
	current := WeekEnding(today)
	previous := current.AddDays(-7)

	currentMinutes := map[Category]float64{}
	previousMinutes := map[Category]float64{}
	for _, a := range activities {
		if !a.Date.IsValid() {
			continue
		}
		var bucket map[Category]float64
		switch WeekEnding(a.Date) {
		case current:
			bucket = currentMinutes
		case previous:
			bucket = previousMinutes
		default:
			continue
		}
		if category, ok := sportCategory(a.Sport); ok {
			bucket[category] += a.ActualDurationMinutes
		}
		bucket[CategoryTotal] += a.ActualDurationMinutes
	}

	changes := make([]VolumeChange, 0, len(Categories))
	for _, category := range Categories {
		change := PercentChange(currentMinutes[category], previousMinutes[category])
		changes = append(changes, VolumeChange{
			Category:        category,
			CurrentMinutes:  currentMinutes[category],
			PreviousMinutes: previousMinutes[category],
			Change:          change,
			Status:          VolumeStatus(change, category, thresholds),
		})
	}
	return changes
}

func sportCategory(s activity.Sport) (Category, bool) {
	switch s {
	case activity.SportRun:
		return CategoryRunning, true
	case activity.SportBike:
		return CategoryCycling, true
	case activity.SportSwim:
		return CategorySwimming, true
	case activity.SportStrength:
		return CategoryStrength, true
	default:
		return "", false
	}
}
