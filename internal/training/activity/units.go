package activity

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	leadingNumberRe = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
	isoDatePrefixRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	hoursTokenRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*h`)
	minutesTokenRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*m`)
	nonNumericRe    = regexp.MustCompile(`[^\d.]`)
)

// extra date layouts seen in hand-edited logs
var fallbackDateLayouts = []string{
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseNumber coerces a loosely typed value to a finite, non-negative float.
// Strings follow parseFloat semantics: the leading numeric prefix is used ("142 bpm" -> 142).
// Anything unparseable, negative or non-finite becomes 0.
func ParseNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		match := leadingNumberRe.FindString(strings.TrimSpace(n))
		if match == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	return sanitize(f)
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParseDuration converts a duration representation to whole minutes.
//
//	90, "90", "90 min" -> 90
//	"1h30m", "1.5h"    -> 90
//	"1:30"             -> 90 (H:MM, the first field is hours)
//	nil, "", "-", "n/a" -> 0
func ParseDuration(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		return parseDurationString(n)
	case json.Number:
		return math.Round(ParseNumber(n))
	default:
		return math.Round(ParseNumber(v))
	}
}

func parseDurationString(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "-" || s == "n/a" {
		return 0
	}

	hours := hoursTokenRe.FindStringSubmatch(s)
	minutes := minutesTokenRe.FindStringSubmatch(s)
	if hours != nil || minutes != nil {
		var total float64
		if hours != nil {
			total += ParseNumber(hours[1]) * 60
		}
		if minutes != nil {
			total += ParseNumber(minutes[1])
		}
		return math.Round(sanitize(total))
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		h := ParseNumber(nonNumericRe.ReplaceAllString(parts[0], ""))
		m := ParseNumber(nonNumericRe.ReplaceAllString(parts[1], ""))
		return math.Round(sanitize(h*60 + m))
	}

	stripped := nonNumericRe.ReplaceAllString(s, "")
	if stripped == "" {
		return 0
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0
	}
	return math.Round(sanitize(f))
}

// ToCivilDate resolves a date-like value to a local calendar date.
// ISO strings keep their literal YYYY-MM-DD part, so a UTC-midnight timestamp never shifts to the
// previous day for viewers west of UTC. Numbers are epoch milliseconds interpreted in loc.
// Unparseable input yields the invalid zero CivilDate.
func ToCivilDate(v any, loc *time.Location) CivilDate {
	if loc == nil {
		loc = time.Local
	}

	switch t := v.(type) {
	case nil:
		return CivilDate{}
	case time.Time:
		if t.IsZero() {
			return CivilDate{}
		}
		return CivilDateOf(t)
	case *time.Time:
		if t == nil || t.IsZero() {
			return CivilDate{}
		}
		return CivilDateOf(*t)
	case CivilDate:
		return t
	case string:
		return parseDateString(t)
	}

	ms := ParseNumber(v)
	if ms <= 0 {
		return CivilDate{}
	}
	return CivilDateOf(time.UnixMilli(int64(ms)).In(loc))
}

func parseDateString(raw string) CivilDate {
	s := strings.TrimSpace(raw)
	if s == "" {
		return CivilDate{}
	}

	if m := isoDatePrefixRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		d := NewCivilDate(year, time.Month(month), day)
		// reject overflowing dates like 2024-02-30 instead of rolling them over
		if d.Year != year || int(d.Month) != month || d.Day != day {
			return CivilDate{}
		}
		return d
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CivilDateOf(t)
		}
	}

	return CivilDate{}
}

var sportTypeIDs = map[int]Sport{
	1:  SportRun,
	2:  SportBike,
	5:  SportSwim,
	18: SportSwim,
	26: SportSwim,
}

var sportKeywords = []struct {
	sport    Sport
	keywords []string
}{
	{SportBike, []string{"bike", "cycl", "ride"}},
	{SportRun, []string{"run", "jog"}},
	{SportSwim, []string{"swim", "pool"}},
	{SportStrength, []string{"strength", "weight", "gym", "lift"}},
}

// ClassifySport maps an explicit sport type id or, failing that, a free-text
// sport description to a Sport. Matching is case-insensitive and by substring.
func ClassifySport(raw string, explicitID *int) Sport {
	if explicitID != nil {
		if sport, ok := sportTypeIDs[*explicitID]; ok {
			return sport
		}
	}

	s := strings.ToLower(raw)
	if s == "" {
		return SportOther
	}
	for _, group := range sportKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(s, kw) {
				return group.sport
			}
		}
	}
	return SportOther
}
