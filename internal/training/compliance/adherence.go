package compliance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/2beens/trainingdash/internal/training/activity"
)

// Adherence is a precomputed compliance file. It is only validated against
// the computed values and never served in their place.
type Adherence struct {
	Compliance    AdherenceCompliance `json:"compliance"`
	RollingTrends []AdherenceTrend    `json:"rolling_trends"`
}

type AdherenceCompliance struct {
	DurationPct *int `json:"duration_pct,omitempty"`
	CountPct    *int `json:"count_pct,omitempty"`
}

type AdherenceTrend struct {
	Date       activity.CivilDate `json:"date"`
	WindowDays int                `json:"window_days"`
	Pct        int                `json:"pct"`
}

func LoadAdherence(r io.Reader) (Adherence, error) {
	var adherence Adherence
	if err := json.NewDecoder(r).Decode(&adherence); err != nil {
		return Adherence{}, fmt.Errorf("decode adherence: %w", err)
	}
	return adherence, nil
}

// Mismatch is a precomputed value that differs from the computed one.
type Mismatch struct {
	Field       string `json:"field"`
	Precomputed int    `json:"precomputed"`
	Computed    int    `json:"computed"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: precomputed %d, computed %d", m.Field, m.Precomputed, m.Computed)
}

// Validate compares the precomputed file with computed results. Rolling
// entries with no computed point for the same date and window are skipped.
func Validate(precomputed Adherence, computed Result, rolling []RollingPoint) []Mismatch {
	var mismatches []Mismatch

	if pct := precomputed.Compliance.DurationPct; pct != nil && *pct != computed.Duration.Pct {
		mismatches = append(mismatches, Mismatch{
			Field:       "compliance.duration_pct",
			Precomputed: *pct,
			Computed:    computed.Duration.Pct,
		})
	}
	if pct := precomputed.Compliance.CountPct; pct != nil && *pct != computed.Count.Pct {
		mismatches = append(mismatches, Mismatch{
			Field:       "compliance.count_pct",
			Precomputed: *pct,
			Computed:    computed.Count.Pct,
		})
	}

	type rollingKey struct {
		date   activity.CivilDate
		window int
	}
	computedRolling := make(map[rollingKey]int, len(rolling))
	for _, p := range rolling {
		computedRolling[rollingKey{p.Date, p.WindowDays}] = p.Pct
	}

	for _, trend := range precomputed.RollingTrends {
		pct, ok := computedRolling[rollingKey{trend.Date, trend.WindowDays}]
		if !ok || pct == trend.Pct {
			continue
		}
		mismatches = append(mismatches, Mismatch{
			Field:       fmt.Sprintf("rolling_trends[%s/%dd]", trend.Date, trend.WindowDays),
			Precomputed: trend.Pct,
			Computed:    pct,
		})
	}

	return mismatches
}
