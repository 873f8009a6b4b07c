package trends

// Caller-specific minimum number of points for a trend line.
const (
	MinPointsChart   = 2
	MinPointsMetrics = 3
)

// TrendLine is the fitted line evaluated at the first and last point.
type TrendLine struct {
	StartValue float64 `json:"startValue"`
	EndValue   float64 `json:"endValue"`
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
}

// LinearTrend fits an ordinary least squares line using the array index as x.
// Values must already be in chronological order. It reports false when there
// are fewer than minPoints values (and never fewer than 2).
func LinearTrend(values []float64, minPoints int) (TrendLine, bool) {
	if minPoints < MinPointsChart {
		minPoints = MinPointsChart
	}
	n := len(values)
	if n < minPoints {
		return TrendLine{}, false
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	nf := float64(n)
	denominator := nf*sumXX - sumX*sumX
	if denominator == 0 {
		return TrendLine{}, false
	}

	slope := (nf*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / nf

	return TrendLine{
		StartValue: intercept,
		EndValue:   intercept + slope*float64(n-1),
		Slope:      slope,
		Intercept:  intercept,
	}, true
}
