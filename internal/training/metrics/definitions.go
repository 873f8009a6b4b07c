package metrics

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/2beens/trainingdash/internal/training/activity"
)

const (
	AssessmentGood    = "good"
	AssessmentWarn    = "warn"
	AssessmentNeutral = "neutral"

	DirectionImproving = "improving"
	DirectionDeclining = "declining"
	DirectionFlat      = "flat"
)

type Filters struct {
	Sports []activity.Sport `json:"sports,omitempty"`
}

// Definition is the display configuration of one metric.
type Definition struct {
	Title    string   `json:"title"`
	Icon     string   `json:"icon"`
	ColorVar string   `json:"colorVar"`
	Filters  *Filters `json:"filters,omitempty"`
	GoodMin  *float64 `json:"good_min,omitempty"`
	GoodMax  *float64 `json:"good_max,omitempty"`
	// HigherIsBetter defaults to true when absent.
	HigherIsBetter *bool `json:"higher_is_better,omitempty"`
}

// Definitions maps metric keys to their definitions.
type Definitions map[string]Definition

// LoadDefinitions decodes a definitions table and rejects keys with no known formula.
func LoadDefinitions(r io.Reader) (Definitions, error) {
	defs := Definitions{}
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("decode metric definitions: %w", err)
	}
	for key := range defs {
		if _, ok := formulas[key]; !ok {
			return nil, fmt.Errorf("metric definition %q: %w", key, ErrUnknownMetric)
		}
	}
	return defs, nil
}

// Assess tells whether value lies in the good range of the definition.
// Definitions without any bound are neutral.
func (d Definition) Assess(value float64) string {
	if d.GoodMin == nil && d.GoodMax == nil {
		return AssessmentNeutral
	}
	if d.GoodMin != nil && value < *d.GoodMin {
		return AssessmentWarn
	}
	if d.GoodMax != nil && value > *d.GoodMax {
		return AssessmentWarn
	}
	return AssessmentGood
}

// Direction interprets the move from start to end with respect to HigherIsBetter.
func (d Definition) Direction(start, end float64) string {
	const epsilon = 1e-9
	delta := end - start
	if delta < epsilon && delta > -epsilon {
		return DirectionFlat
	}
	higherIsBetter := d.HigherIsBetter == nil || *d.HigherIsBetter
	if (delta > 0) == higherIsBetter {
		return DirectionImproving
	}
	return DirectionDeclining
}

func (d Definition) sports() []activity.Sport {
	if d.Filters == nil {
		return nil
	}
	return d.Filters.Sports
}

// acceptsSport applies the formula sport filter and the definition override.
// The override can only narrow the formula filter.
func acceptsSport(formulaSports, override []activity.Sport, s activity.Sport) bool {
	if len(formulaSports) > 0 && !containsSport(formulaSports, s) {
		return false
	}
	if len(override) > 0 && !containsSport(override, s) {
		return false
	}
	return true
}

func containsSport(sports []activity.Sport, s activity.Sport) bool {
	for _, candidate := range sports {
		if candidate == s {
			return true
		}
	}
	return false
}
