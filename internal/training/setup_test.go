package training_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/trainingdash/internal/config"
	telemetry "github.com/2beens/trainingdash/internal/telemetry/metrics"
	"github.com/2beens/trainingdash/internal/training"
	"github.com/2beens/trainingdash/internal/training/activity"
	"github.com/2beens/trainingdash/internal/training/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewServiceFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		TimeZone: "UTC",
		PlannedSources: []string{
			writeFile(t, dir, "planned.json", `[{"date": "2024-05-06", "sport": "running", "plannedDuration": "1:00"}]`),
		},
		ActivitiesSources: []string{
			writeFile(t, dir, "activities.json", `[
				{"date": "2024-05-06", "sport": "running", "durationInSeconds": 3300, "status": "completed"},
				{"date": "2024-05-07", "sport": "lap swimming", "duration": "40 min"}
			]`),
		},
		DefinitionsPath:   writeFile(t, dir, "metrics.json", `{"tss": {"title": "Weekly TSS"}}`),
		AdherencePath:     filepath.Join(dir, "missing.json"),
		FITDir:            dir,
		SourceCacheSizeMB: 1,
	}

	svc, err := training.NewServiceFromConfig(training.SetupParams{
		Config:  cfg,
		Metrics: telemetry.NewTestManager(),
	})
	require.NoError(t, err)

	all, err := svc.Activities(context.Background(), activity.CivilDate{}, activity.CivilDate{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, activity.SourceMerged, all[0].Source)
	assert.Equal(t, 60.0, all[0].PlannedDurationMinutes)
	assert.Equal(t, 55.0, all[0].ActualDurationMinutes)
	assert.Equal(t, activity.SportSwim, all[1].Sport)

	var tssTitle string
	for _, info := range svc.Metrics() {
		if info.Key == metrics.KeyTSS {
			tssTitle = info.Definition.Title
		}
	}
	assert.Equal(t, "Weekly TSS", tssTitle)
}

func TestNewServiceFromConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := training.NewServiceFromConfig(training.SetupParams{
		Config:  &config.Config{GymSetsEnabled: true},
		Metrics: telemetry.NewTestManager(),
	})
	require.ErrorIs(t, err, training.ErrGymSetsNoDB)

	_, err = training.NewServiceFromConfig(training.SetupParams{
		Config:  &config.Config{DefinitionsPath: writeFile(t, dir, "metrics.json", `{"made_up": {}}`)},
		Metrics: telemetry.NewTestManager(),
	})
	require.ErrorIs(t, err, metrics.ErrUnknownMetric)

	_, err = training.NewServiceFromConfig(training.SetupParams{
		Config:  &config.Config{TimeZone: "Mars/Olympus"},
		Metrics: telemetry.NewTestManager(),
	})
	require.Error(t, err)
}

func TestNewServiceFromConfig_MissingSource(t *testing.T) {
	cfg := &config.Config{
		ActivitiesSources: []string{filepath.Join(t.TempDir(), "nope.json")},
	}
	svc, err := training.NewServiceFromConfig(training.SetupParams{
		Config:  cfg,
		Metrics: telemetry.NewTestManager(),
	})
	require.NoError(t, err)

	_, err = svc.Weekly(context.Background())
	require.ErrorIs(t, err, training.ErrNoData)
}
