package metrics

import (
	"errors"
	"fmt"

	"github.com/2beens/trainingdash/internal/training/activity"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Extractor derives metric series from canonical activities.
type Extractor struct {
	definitions Definitions
}

func NewExtractor(definitions Definitions) *Extractor {
	if definitions == nil {
		definitions = Definitions{}
	}
	return &Extractor{
		definitions: definitions,
	}
}

var defaultExtractor = NewExtractor(nil)

// Extract derives a series with the built-in formulas and no definition overrides.
func Extract(activities []activity.Activity, key string) (Series, error) {
	return defaultExtractor.Extract(activities, key)
}

// Definition returns the configured definition for key, if any.
func (e *Extractor) Definition(key string) (Definition, bool) {
	def, ok := e.definitions[key]
	return def, ok
}

// Extract derives the series for key. Activities with an invalid date or a
// missing required field contribute no point. The result is in extraction order.
func (e *Extractor) Extract(activities []activity.Activity, key string) (Series, error) {
	f, ok := formulas[key]
	if !ok {
		return Series{}, fmt.Errorf("extract %q: %w", key, ErrUnknownMetric)
	}

	override := e.definitions[key].sports()
	series := Series{
		Key:    key,
		Kind:   f.kind,
		Points: []Point{},
	}

	if f.kind == KindWeeklySum {
		series.Points = weeklySum(activities, f.sum, override)
		return series, nil
	}

	for _, a := range activities {
		if !a.Date.IsValid() || !acceptsSport(f.sports, override, a.Sport) {
			continue
		}
		if !hasRequired(a, f.required) {
			continue
		}
		value, ok := f.value(a)
		if !ok {
			continue
		}
		p := Point{
			Date:      a.Date,
			Value:     value,
			Label:     activityLabel(a),
			Breakdown: f.breakdown(a),
		}
		if key == KeyFeelingLoad {
			p.Secondary = a.Metrics.Feeling
		}
		series.Points = append(series.Points, p)
	}

	return series, nil
}

func hasRequired(a activity.Activity, required []field) bool {
	for _, r := range required {
		if r.get(a) == 0 {
			return false
		}
	}
	return true
}

// weeklySum sums the field per Saturday-ending week, one point per week in
// order of first appearance.
func weeklySum(activities []activity.Activity, sum field, override []activity.Sport) []Point {
	var weeks []activity.CivilDate
	totals := map[activity.CivilDate]float64{}
	counts := map[activity.CivilDate]int{}

	for _, a := range activities {
		if !a.Date.IsValid() || !acceptsSport(nil, override, a.Sport) {
			continue
		}
		week := a.Date.WeekEndingSaturday()
		if _, seen := counts[week]; !seen {
			weeks = append(weeks, week)
		}
		totals[week] += sum.get(a)
		counts[week]++
	}

	points := make([]Point, 0, len(weeks))
	for _, week := range weeks {
		points = append(points, Point{
			Date:      week,
			Value:     totals[week],
			Label:     "Week ending " + week.String(),
			Breakdown: fmt.Sprintf("%.0f %s from %d activities", totals[week], sum.name, counts[week]),
		})
	}
	return points
}

func activityLabel(a activity.Activity) string {
	switch {
	case a.Title != "":
		return a.Title
	case a.PlannedWorkout != "":
		return a.PlannedWorkout
	default:
		return fmt.Sprintf("%s %s", a.Sport, a.Date)
	}
}
