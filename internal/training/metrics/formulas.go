package metrics

import (
	"fmt"

	"github.com/2beens/trainingdash/internal/training/activity"
)

type Kind string

const (
	// KindRatio divides two telemetry fields, one point per qualifying activity.
	KindRatio Kind = "ratio"
	// KindSingle reports a single telemetry field, one point per qualifying activity.
	KindSingle Kind = "single"
	// KindWeeklySum sums a field per Saturday-ending week across all sports.
	KindWeeklySum Kind = "weekly_sum"
	// KindComposite emits one derived point per activity.
	KindComposite Kind = "composite"
)

const (
	KeyEfficiencyFactor    = "efficiency_factor"
	KeyPowerRPE            = "power_rpe"
	KeyRunEconomy          = "run_economy"
	KeyGroundContact       = "ground_contact"
	KeyVerticalOscillation = "vertical_oscillation"
	KeyVO2Max              = "vo2max"
	KeyAnaerobic           = "anaerobic"
	KeyTSS                 = "tss"
	KeyCalories            = "calories"
	KeyTrainingBalance     = "training_balance"
	KeyFeelingLoad         = "feeling_load"
)

type field struct {
	name string
	get  func(a activity.Activity) float64
}

var (
	fieldHR      = field{"hr", func(a activity.Activity) float64 { return a.Metrics.HR }}
	fieldPower   = field{"power", func(a activity.Activity) float64 { return a.Metrics.Power }}
	fieldSpeed   = field{"speed", func(a activity.Activity) float64 { return a.Metrics.Speed }}
	fieldRPE     = field{"rpe", func(a activity.Activity) float64 { return a.Metrics.RPE }}
	fieldTSS     = field{"tss", func(a activity.Activity) float64 { return a.Metrics.TSS }}
	fieldCals    = field{"calories", func(a activity.Activity) float64 { return a.Metrics.Calories }}
	fieldGCT     = field{"gct", func(a activity.Activity) float64 { return a.Metrics.GCT }}
	fieldVert    = field{"vertical_oscillation", func(a activity.Activity) float64 { return a.Metrics.VerticalOscillation }}
	fieldVO2     = field{"vo2max", func(a activity.Activity) float64 { return a.Metrics.VO2Max }}
	fieldAna     = field{"anaerobic", func(a activity.Activity) float64 { return a.Metrics.Anaerobic }}
	fieldFeeling = field{"feeling", func(a activity.Activity) float64 { return a.Metrics.Feeling }}
)

// formula describes how one metric is derived from canonical activities.
type formula struct {
	kind Kind
	// sports restricts the qualifying activities; empty means every sport
	sports []activity.Sport
	// required fields must be non-zero, otherwise the activity yields no point
	required  []field
	value     func(a activity.Activity) (float64, bool)
	breakdown func(a activity.Activity) string
	// sum is the summed field of weekly metrics
	sum field
}

var formulas = map[string]formula{
	KeyEfficiencyFactor: {
		kind:     KindRatio,
		sports:   []activity.Sport{activity.SportBike},
		required: []field{fieldPower, fieldHR},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.Power / a.Metrics.HR, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("%.0fW / %.0fbpm", a.Metrics.Power, a.Metrics.HR)
		},
	},
	KeyPowerRPE: {
		kind:     KindRatio,
		sports:   []activity.Sport{activity.SportBike},
		required: []field{fieldPower, fieldRPE},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.Power / a.Metrics.RPE, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("%.0fW / RPE %.0f", a.Metrics.Power, a.Metrics.RPE)
		},
	},
	KeyRunEconomy: {
		kind:     KindRatio,
		sports:   []activity.Sport{activity.SportRun},
		required: []field{fieldSpeed, fieldHR},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.Speed * 60 / a.Metrics.HR, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("%.0f m/min / %.0fbpm", a.Metrics.Speed*60, a.Metrics.HR)
		},
	},
	KeyGroundContact: {
		kind:     KindSingle,
		sports:   []activity.Sport{activity.SportRun},
		required: []field{fieldGCT},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.GCT, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("%.0f ms", a.Metrics.GCT)
		},
	},
	KeyVerticalOscillation: {
		kind:     KindSingle,
		sports:   []activity.Sport{activity.SportRun},
		required: []field{fieldVert},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.VerticalOscillation, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("%.1f cm", a.Metrics.VerticalOscillation)
		},
	},
	KeyVO2Max: {
		kind:     KindSingle,
		required: []field{fieldVO2},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.VO2Max, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("VO2max %.0f (%s)", a.Metrics.VO2Max, a.Sport)
		},
	},
	KeyAnaerobic: {
		kind:     KindSingle,
		required: []field{fieldAna},
		value: func(a activity.Activity) (float64, bool) {
			return a.Metrics.Anaerobic, true
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("Anaerobic TE %.1f", a.Metrics.Anaerobic)
		},
	},
	KeyTSS: {
		kind: KindWeeklySum,
		sum:  fieldTSS,
	},
	KeyCalories: {
		kind: KindWeeklySum,
		sum:  fieldCals,
	},
	KeyTrainingBalance: {
		kind:      KindComposite,
		value:     easyZoneShare,
		breakdown: zoneBreakdown,
	},
	KeyFeelingLoad: {
		kind:     KindComposite,
		required: []field{fieldFeeling},
		value: func(a activity.Activity) (float64, bool) {
			load := sessionLoad(a)
			return load, load > 0
		},
		breakdown: func(a activity.Activity) string {
			return fmt.Sprintf("load %.0f / feeling %.0f", sessionLoad(a), a.Metrics.Feeling)
		},
	},
}

// Keys returns the keys of every known metric.
func Keys() []string {
	keys := make([]string, 0, len(formulas))
	for k := range formulas {
		keys = append(keys, k)
	}
	return keys
}

// sessionLoad is TSS when recorded, otherwise the session-RPE load (minutes * RPE).
func sessionLoad(a activity.Activity) float64 {
	if a.Metrics.TSS > 0 {
		return a.Metrics.TSS
	}
	return a.ActualDurationMinutes * a.Metrics.RPE
}

// easyZoneShare is the percentage of zone time spent in zones 1 and 2.
func easyZoneShare(a activity.Activity) (float64, bool) {
	var total, easy float64
	for i, z := range a.Zones {
		total += z
		if i < 2 {
			easy += z
		}
	}
	if total <= 0 {
		return 0, false
	}
	return easy / total * 100, true
}

func zoneBreakdown(a activity.Activity) string {
	var total float64
	for _, z := range a.Zones {
		total += z
	}
	if total <= 0 {
		return ""
	}
	breakdown := ""
	for i, z := range a.Zones {
		if i > 0 {
			breakdown += " / "
		}
		breakdown += fmt.Sprintf("Z%d %.0f%%", i+1, z/total*100)
	}
	return breakdown
}
