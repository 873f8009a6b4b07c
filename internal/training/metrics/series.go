package metrics

import (
	"sort"

	"github.com/2beens/trainingdash/internal/training/activity"
)

// Point is one value of a metric series.
type Point struct {
	Date      activity.CivilDate `json:"date"`
	Value     float64            `json:"value"`
	Label     string             `json:"label"`
	Breakdown string             `json:"breakdown"`
	// Secondary carries the paired value of composite metrics (e.g. feeling for feeling_load).
	Secondary float64 `json:"secondary,omitempty"`
}

// Series is the output of one metric extraction.
// Points are in extraction order, not necessarily sorted by date.
type Series struct {
	Key    string  `json:"key"`
	Kind   Kind    `json:"kind"`
	Points []Point `json:"points"`
}

// Sorted returns a copy of the series with points in ascending date order.
// Trend computation requires this order.
func (s Series) Sorted() Series {
	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return Series{
		Key:    s.Key,
		Kind:   s.Kind,
		Points: points,
	}
}

func (s Series) Values() []float64 {
	values := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		values = append(values, p.Value)
	}
	return values
}

func (s Series) IsEmpty() bool {
	return len(s.Points) == 0
}
