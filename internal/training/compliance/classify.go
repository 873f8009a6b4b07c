package compliance

import (
	"math"

	"github.com/2beens/trainingdash/internal/training/trends"
)

const (
	BandGood           = "good"
	BandAcceptable     = "acceptable"
	BandNeedsAttention = "needs_attention"
)

// maxPercent bounds Percent for degenerate ratios such as a tiny planned duration.
const maxPercent = math.MaxInt32

// Percent returns round(actual/planned*100), or 0 when planned is not positive.
// The result is clamped to [0, maxPercent].
func Percent(actual, planned float64) int {
	if planned <= 0 {
		return 0
	}
	pct := math.Round(actual / planned * 100)
	switch {
	case math.IsNaN(pct), pct <= 0:
		return 0
	case pct >= maxPercent:
		return maxPercent
	}
	return int(pct)
}

// Band maps a compliance percentage to its display band.
// Every widget and table uses this mapping.
func Band(pct int) string {
	switch {
	case pct >= 100:
		return BandGood
	case pct >= 80:
		return BandAcceptable
	default:
		return BandNeedsAttention
	}
}

// Score is a compliance percentage with its band.
type Score struct {
	Pct   int    `json:"pct"`
	Label string `json:"label"`
}

func NewScore(actual, planned float64) Score {
	pct := Percent(actual, planned)
	return Score{
		Pct:   pct,
		Label: Band(pct),
	}
}

// Result holds the independently computed duration and count compliance.
type Result struct {
	Duration Score `json:"duration"`
	Count    Score `json:"count"`
}

func Classify(actualMinutes, plannedMinutes float64, completed, total int) Result {
	return Result{
		Duration: NewScore(actualMinutes, plannedMinutes),
		Count:    NewScore(float64(completed), float64(total)),
	}
}

// Summary totals a set of weeks and classifies them.
type Summary struct {
	Weeks          int     `json:"weeks"`
	PlannedMinutes float64 `json:"plannedMinutes"`
	ActualMinutes  float64 `json:"actualMinutes"`
	Completed      int     `json:"completed"`
	Total          int     `json:"total"`
	Result
}

func Summarize(weeks []trends.WeekBucket) Summary {
	s := Summary{Weeks: len(weeks)}
	for _, w := range weeks {
		s.PlannedMinutes += w.PlannedMinutes
		s.ActualMinutes += w.ActualMinutes
		s.Completed += w.CompletedCount
		s.Total += w.TotalCount
	}
	s.Result = Classify(s.ActualMinutes, s.PlannedMinutes, s.Completed, s.Total)
	return s
}
