package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/2beens/trainingdash/internal/training/activity"
	"github.com/2beens/trainingdash/internal/training/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) activity.CivilDate {
	return activity.NewCivilDate(2024, time.May, d)
}

func testActivities() []activity.Activity {
	return []activity.Activity{
		{Date: day(8), Sport: activity.SportBike, Title: "Tempo", Metrics: activity.Metrics{Power: 240, HR: 160, RPE: 6, TSS: 80, Calories: 900}},
		// missing HR: no efficiency_factor point
		{Date: day(2), Sport: activity.SportBike, Metrics: activity.Metrics{Power: 200, RPE: 4, TSS: 50, Calories: 600}},
		{Date: day(3), Sport: activity.SportRun, Metrics: activity.Metrics{Speed: 3, HR: 150, GCT: 250, TSS: 40, Calories: 500}, Zones: []float64{10, 20, 10}},
		{Date: day(4), Sport: activity.SportSwim, Metrics: activity.Metrics{TSS: 30, Calories: 400, VO2Max: 50}},
		{Date: activity.CivilDate{}, Sport: activity.SportBike, Metrics: activity.Metrics{Power: 300, HR: 150, TSS: 1000}},
	}
}

func TestExtract_RatioSkipsMissingFields(t *testing.T) {
	series, err := metrics.Extract(testActivities(), metrics.KeyEfficiencyFactor)
	require.NoError(t, err)
	assert.Equal(t, metrics.KindRatio, series.Kind)
	require.Len(t, series.Points, 1)

	p := series.Points[0]
	assert.Equal(t, day(8), p.Date)
	assert.Equal(t, 1.5, p.Value)
	assert.Equal(t, "Tempo", p.Label)
	assert.Equal(t, "240W / 160bpm", p.Breakdown)
}

func TestExtract_PowerRPE(t *testing.T) {
	series, err := metrics.Extract(testActivities(), metrics.KeyPowerRPE)
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	// extraction order, not date order
	assert.Equal(t, day(8), series.Points[0].Date)
	assert.Equal(t, 40.0, series.Points[0].Value)
	assert.Equal(t, 50.0, series.Points[1].Value)

	sorted := series.Sorted()
	assert.Equal(t, day(2), sorted.Points[0].Date)
	assert.Equal(t, day(8), series.Points[0].Date)
}

func TestExtract_RunEconomy(t *testing.T) {
	series, err := metrics.Extract(testActivities(), metrics.KeyRunEconomy)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.InDelta(t, 1.2, series.Points[0].Value, 1e-9)
	assert.Equal(t, "Run 2024-05-03", series.Points[0].Label)
}

func TestExtract_SingleAnySport(t *testing.T) {
	series, err := metrics.Extract(testActivities(), metrics.KeyVO2Max)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, 50.0, series.Points[0].Value)
	assert.Equal(t, "VO2max 50 (Swim)", series.Points[0].Breakdown)
}

func TestExtract_WeeklySum(t *testing.T) {
	series, err := metrics.Extract(testActivities(), metrics.KeyTSS)
	require.NoError(t, err)
	assert.Equal(t, metrics.KindWeeklySum, series.Kind)
	require.Len(t, series.Points, 2)

	// 2024-05-08 is a Wednesday, its week ends Saturday 2024-05-11
	assert.Equal(t, day(11), series.Points[0].Date)
	assert.Equal(t, 80.0, series.Points[0].Value)
	assert.Equal(t, "Week ending 2024-05-11", series.Points[0].Label)

	// other sports included, invalid date excluded
	assert.Equal(t, day(4), series.Points[1].Date)
	assert.Equal(t, 120.0, series.Points[1].Value)
	assert.True(t, strings.Contains(series.Points[1].Breakdown, "3 activities"))
}

func TestExtract_WeeklySum_ZeroValues(t *testing.T) {
	activities := []activity.Activity{
		{Date: day(1), Sport: activity.SportRun},
		{Date: day(2), Sport: activity.SportBike},
	}
	series, err := metrics.Extract(activities, metrics.KeyCalories)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, 0.0, series.Points[0].Value)
}

func TestExtract_Composite(t *testing.T) {
	series, err := metrics.Extract(testActivities(), metrics.KeyTrainingBalance)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, 75.0, series.Points[0].Value)
	assert.Equal(t, "Z1 25% / Z2 50% / Z3 25%", series.Points[0].Breakdown)

	activities := []activity.Activity{
		{Date: day(1), Sport: activity.SportRun, ActualDurationMinutes: 45, Metrics: activity.Metrics{RPE: 4, Feeling: 3}},
		{Date: day(2), Sport: activity.SportBike, Metrics: activity.Metrics{TSS: 70, RPE: 4, Feeling: 5}},
		// no feeling
		{Date: day(3), Sport: activity.SportBike, Metrics: activity.Metrics{TSS: 70}},
		// no load
		{Date: day(4), Sport: activity.SportBike, Metrics: activity.Metrics{Feeling: 2}},
	}
	series, err = metrics.Extract(activities, metrics.KeyFeelingLoad)
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, 180.0, series.Points[0].Value)
	assert.Equal(t, 3.0, series.Points[0].Secondary)
	assert.Equal(t, 70.0, series.Points[1].Value)
	assert.Equal(t, 5.0, series.Points[1].Secondary)
}

func TestExtract_UnknownMetric(t *testing.T) {
	_, err := metrics.Extract(testActivities(), "watts_per_kg")
	require.ErrorIs(t, err, metrics.ErrUnknownMetric)
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, key := range metrics.Keys() {
		series, err := metrics.Extract(nil, key)
		require.NoError(t, err, key)
		assert.True(t, series.IsEmpty(), key)
		assert.NotNil(t, series.Points, key)
	}
}

func TestExtractor_DefinitionFilterNarrows(t *testing.T) {
	extractor := metrics.NewExtractor(metrics.Definitions{
		metrics.KeyVO2Max: {Filters: &metrics.Filters{Sports: []activity.Sport{activity.SportRun}}},
		metrics.KeyTSS:    {Filters: &metrics.Filters{Sports: []activity.Sport{activity.SportBike}}},
		// Swim is outside the Run-only formula filter, nothing qualifies
		metrics.KeyGroundContact: {Filters: &metrics.Filters{Sports: []activity.Sport{activity.SportSwim}}},
	})

	series, err := extractor.Extract(testActivities(), metrics.KeyVO2Max)
	require.NoError(t, err)
	assert.Empty(t, series.Points)

	series, err = extractor.Extract(testActivities(), metrics.KeyTSS)
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, 50.0, series.Points[1].Value)

	series, err = extractor.Extract(testActivities(), metrics.KeyGroundContact)
	require.NoError(t, err)
	assert.Empty(t, series.Points)
}

func TestSeries_Values(t *testing.T) {
	s := metrics.Series{Points: []metrics.Point{{Value: 1}, {Value: 2.5}}}
	assert.Equal(t, []float64{1, 2.5}, s.Values())
	assert.Empty(t, metrics.Series{}.Values())
}
