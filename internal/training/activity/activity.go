package activity

import (
	"encoding/json"
	"fmt"
	"time"
)

// RawRecord is one loosely typed record as decoded from a JSON source.
// The same conceptual field can appear under several historical names.
type RawRecord map[string]any

type Sport string

const (
	SportRun      Sport = "Run"
	SportBike     Sport = "Bike"
	SportSwim     Sport = "Swim"
	SportStrength Sport = "Strength"
	SportOther    Sport = "Other"
)

func (s Sport) String() string {
	return string(s)
}

// Source tells which input stream(s) contributed to an Activity.
type Source string

const (
	SourcePlan       Source = "plan"
	SourceActualOnly Source = "actual_only"
	SourceMerged     Source = "merged"
)

const (
	StatusCompleted = "COMPLETED"
	StatusMissed    = "MISSED"
	StatusPlanned   = "PLANNED"
)

// CivilDate is a local calendar date without time of day.
// The zero value is the invalid sentinel.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// CivilDateOf returns the wall-clock date of t in its own location.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) IsValid() bool {
	return d.Year != 0 && d.Month >= time.January && d.Month <= time.December && d.Day >= 1 && d.Day <= 31
}

// Time returns midnight UTC of the date, used only for calendar arithmetic.
func (d CivilDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CivilDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDateOf(d.Time().AddDate(0, 0, n))
}

// DaysSince returns the number of days from other to d.
func (d CivilDate) DaysSince(other CivilDate) int {
	return int(d.Time().Sub(other.Time()).Hours() / 24)
}

func (d CivilDate) Before(other CivilDate) bool {
	return d.Compare(other) < 0
}

func (d CivilDate) After(other CivilDate) bool {
	return d.Compare(other) > 0
}

func (d CivilDate) Compare(other CivilDate) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d CivilDate) String() string {
	if !d.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CivilDate) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *CivilDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = CivilDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("civil date: %w", err)
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("civil date: %w", err)
	}
	*d = CivilDateOf(t)
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Metrics holds the derived telemetry fields of an activity.
// Missing or unparseable source values are 0.
type Metrics struct {
	HR                  float64 `json:"hr"`
	Power               float64 `json:"power"`
	Speed               float64 `json:"speed"`
	RPE                 float64 `json:"rpe"`
	TSS                 float64 `json:"tss"`
	Calories            float64 `json:"calories"`
	GCT                 float64 `json:"gct"`
	VerticalOscillation float64 `json:"verticalOscillation"`
	VO2Max              float64 `json:"vo2max"`
	Anaerobic           float64 `json:"anaerobic"`
	Distance            float64 `json:"distance"`
	ElevationGain       float64 `json:"elevationGain"`
	Cadence             float64 `json:"cadence"`
	Feeling             float64 `json:"feeling"`
}

// Activity is one canonical workout record (planned, actual or merged).
type Activity struct {
	Date                   CivilDate `json:"date"`
	Sport                  Sport     `json:"sport"`
	Title                  string    `json:"title,omitempty"`
	PlannedWorkout         string    `json:"plannedWorkout,omitempty"`
	Status                 string    `json:"status,omitempty"`
	PlannedDurationMinutes float64   `json:"plannedDurationMinutes"`
	ActualDurationMinutes  float64   `json:"actualDurationMinutes"`
	Metrics                Metrics   `json:"metrics"`
	// Zones holds minutes spent per heart rate zone, zone 1 first.
	Zones  []float64 `json:"zones,omitempty"`
	Source Source    `json:"source,omitempty"`
}

func (a Activity) Key() string {
	return Key(a.Date, a.Sport)
}

func (a Activity) IsCompleted() bool {
	return a.Status == StatusCompleted
}

func (a Activity) IsMissed() bool {
	return a.Status == StatusMissed
}

// clone returns a copy that shares no slices with a.
func (a Activity) clone() Activity {
	if a.Zones != nil {
		a.Zones = append([]float64(nil), a.Zones...)
	}
	return a
}

// WeekEndingSaturday returns the Saturday closing the Sunday-to-Saturday week of d.
func (d CivilDate) WeekEndingSaturday() CivilDate {
	return d.AddDays(6 - int(d.Weekday()))
}

// WeekStartMonday returns the Monday opening the Monday-to-Sunday week of d.
func (d CivilDate) WeekStartMonday() CivilDate {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}
