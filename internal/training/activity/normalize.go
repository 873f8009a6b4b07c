package activity

import (
	"fmt"
	"strings"
	"time"
)

// All known historical names of a field live here, tried in order.
// Business logic downstream only ever sees the canonical Activity.
var (
	dateFields        = []string{"date", "calendarDate", "startTimeLocal", "startTime", "day"}
	sportIDFields     = []string{"sportTypeId", "sportTypeID"}
	sportTextFields   = []string{"activityType", "actualSport", "sport", "type"}
	titleFields       = []string{"activityName", "title", "name"}
	plannedFields     = []string{"plannedDuration", "plannedMinutes"}
	actualFields      = []string{"actualDuration", "duration"}
	actualSecsFields  = []string{"durationInSeconds", "movingDuration"}
	zoneSecondsFields = []string{"hrTimeInZone_1", "hrTimeInZone_2", "hrTimeInZone_3", "hrTimeInZone_4", "hrTimeInZone_5"}
)

var metricFields = []struct {
	names []string
	set   func(m *Metrics, v float64)
}{
	{[]string{"averageHR", "avgHR", "avgHr", "hr"}, func(m *Metrics, v float64) { m.HR = v }},
	{[]string{"avgPower", "averagePower", "power"}, func(m *Metrics, v float64) { m.Power = v }},
	{[]string{"averageSpeed", "avgSpeed", "speed"}, func(m *Metrics, v float64) { m.Speed = v }},
	{[]string{"RPE", "rpe"}, func(m *Metrics, v float64) { m.RPE = v }},
	{[]string{"trainingStressScore", "tss", "TSS"}, func(m *Metrics, v float64) { m.TSS = v }},
	{[]string{"calories", "kcal"}, func(m *Metrics, v float64) { m.Calories = v }},
	{[]string{"avgGroundContactTime", "groundContactTime"}, func(m *Metrics, v float64) { m.GCT = v }},
	{[]string{"avgVerticalOscillation", "verticalOscillation"}, func(m *Metrics, v float64) { m.VerticalOscillation = v }},
	{[]string{"vO2MaxValue", "vo2max", "vo2Max"}, func(m *Metrics, v float64) { m.VO2Max = v }},
	{[]string{"anaerobicTrainingEffect", "anaerobic"}, func(m *Metrics, v float64) { m.Anaerobic = v }},
	{[]string{"distance"}, func(m *Metrics, v float64) { m.Distance = v }},
	{[]string{"elevationGain"}, func(m *Metrics, v float64) { m.ElevationGain = v }},
	{
		[]string{"averageRunningCadenceInStepsPerMinute", "averageBikingCadenceInRevPerMinute", "averageSwimCadenceInStrokesPerMinute", "cadence"},
		func(m *Metrics, v float64) { m.Cadence = v },
	},
	{[]string{"Feeling", "feeling"}, func(m *Metrics, v float64) { m.Feeling = v }},
}

// NormalizeReport counts the parse fallbacks of one normalization pass.
type NormalizeReport struct {
	Records       int `json:"records"`
	InvalidDates  int `json:"invalidDates"`
	UnknownSports int `json:"unknownSports"`
}

func (r NormalizeReport) String() string {
	return fmt.Sprintf("records: %d, invalid dates: %d, unclassified sports: %d", r.Records, r.InvalidDates, r.UnknownSports)
}

type Normalizer struct {
	location *time.Location
}

// NewNormalizer creates a normalizer resolving epoch timestamps in loc (time.Local when nil).
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{
		location: loc,
	}
}

// Normalize converts raw records into canonical activities, preserving input order.
// Records with an unparseable date are kept with the invalid date sentinel.
func (n *Normalizer) Normalize(records []RawRecord) []Activity {
	activities, _ := n.NormalizeWithReport(records)
	return activities
}

func (n *Normalizer) NormalizeWithReport(records []RawRecord) ([]Activity, NormalizeReport) {
	report := NormalizeReport{Records: len(records)}
	activities := make([]Activity, 0, len(records))
	for _, rec := range records {
		a := n.normalizeRecord(rec)
		if !a.Date.IsValid() {
			report.InvalidDates++
		}
		if a.Sport == SportOther {
			report.UnknownSports++
		}
		activities = append(activities, a)
	}
	return activities, report
}

func (n *Normalizer) normalizeRecord(rec RawRecord) Activity {
	a := Activity{
		Date:           ToCivilDate(rec.first(dateFields), n.location),
		Sport:          ClassifySport(rec.sportText(), rec.sportID()),
		Title:          rec.firstString(titleFields),
		PlannedWorkout: rec.firstString([]string{"plannedWorkout"}),
		Status:         strings.ToUpper(rec.firstString([]string{"status"})),
	}

	a.PlannedDurationMinutes = ParseDuration(rec.first(plannedFields))
	a.ActualDurationMinutes = ParseDuration(rec.first(actualFields))
	if a.ActualDurationMinutes == 0 {
		if secs := ParseNumber(rec.first(actualSecsFields)); secs > 0 {
			a.ActualDurationMinutes = ParseDuration(secs / 60)
		}
	}

	for _, f := range metricFields {
		f.set(&a.Metrics, ParseNumber(rec.first(f.names)))
	}

	a.Zones = rec.zones()
	return a
}

// first returns the first populated value among names.
func (r RawRecord) first(names []string) any {
	for _, name := range names {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

func (r RawRecord) firstString(names []string) string {
	for _, name := range names {
		if s, ok := r[name].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func (r RawRecord) sportID() *int {
	candidates := []any{r.first(sportIDFields)}
	if nested, ok := r["activityType"].(map[string]any); ok {
		candidates = append(candidates, nested["sportTypeId"], nested["typeId"])
	}
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if id := ParseNumber(c); id > 0 {
			v := int(id)
			return &v
		}
	}
	return nil
}

func (r RawRecord) sportText() string {
	for _, name := range sportTextFields {
		switch v := r[name].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case map[string]any:
			if key, ok := v["typeKey"].(string); ok && key != "" {
				return key
			}
		}
	}
	return ""
}

// zones returns minutes per heart rate zone, either from a "zones" array (minutes)
// or from per-zone seconds fields.
func (r RawRecord) zones() []float64 {
	if raw, ok := r["zones"].([]any); ok && len(raw) > 0 {
		zones := make([]float64, 0, len(raw))
		for _, z := range raw {
			zones = append(zones, ParseNumber(z))
		}
		return zones
	}

	var zones []float64
	found := false
	for _, name := range zoneSecondsFields {
		v, ok := r[name]
		if ok {
			found = true
		}
		zones = append(zones, ParseNumber(v)/60)
	}
	if !found {
		return nil
	}
	return zones
}
