//go:build integration

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/trainingdash/internal/training"
	"github.com/2beens/trainingdash/internal/training/activity"

	"github.com/stretchr/testify/require"
)

const testPlannedJSON = `[
	{"date": "2024-05-06", "sport": "running", "title": "Easy run", "plannedDuration": 60},
	{"date": "2024-05-08", "sport": "road_biking", "title": "Tempo ride", "plannedDuration": "1:30"}
]`

const testActivitiesJSON = `[
	{"date": "2024-05-06", "sport": "running", "durationInSeconds": 3480, "status": "completed", "trainingStressScore": 48},
	{"date": "2024-05-08", "sport": "road_biking", "durationInSeconds": 5400, "status": "completed", "trainingStressScore": 85}
]`

func (s *IntegrationTestSuite) getJSON(ctx context.Context, path string, target any) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	if resp.StatusCode == http.StatusOK && target != nil {
		require.NoError(s.T(), json.Unmarshal(body, target), string(body))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) addGymSet(ctx context.Context, exerciseID, muscleGroup string, kilos, reps int, at time.Time) {
	_, err := s.dbPool.Exec(ctx, `
		INSERT INTO exercise (exercise_id, muscle_group, kilos, reps, metadata, created_at)
		VALUES ($1, $2, $3, $4, '{}', $5)`,
		exerciseID, muscleGroup, kilos, reps, at,
	)
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) TestTraining_ActivitiesWithGymSets() {
	ctx := context.Background()
	t := s.T()

	_, err := s.dbPool.Exec(ctx, "DELETE FROM exercise")
	require.NoError(t, err)

	gymDay := time.Date(2024, time.May, 9, 18, 0, 0, 0, time.UTC)
	s.addGymSet(ctx, "squat", "legs", 100, 5, gymDay)
	s.addGymSet(ctx, "squat", "legs", 100, 5, gymDay.Add(5*time.Minute))
	s.addGymSet(ctx, "pull-up", "back", 0, 10, gymDay.Add(40*time.Minute))

	var resp training.ActivitiesResponse
	status := s.getJSON(ctx, "/training/activities?from=2024-05-01&to=2024-05-31", &resp)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3, resp.Total)

	run, ride, gym := resp.Activities[0], resp.Activities[1], resp.Activities[2]
	require.Equal(t, activity.SourceMerged, run.Source)
	require.Equal(t, 60.0, run.PlannedDurationMinutes)
	require.Equal(t, 58.0, run.ActualDurationMinutes)
	require.Equal(t, 90.0, ride.PlannedDurationMinutes)

	require.Equal(t, activity.SportStrength, gym.Sport)
	require.Equal(t, activity.SourceActualOnly, gym.Source)
	require.Equal(t, "Gym: legs, back", gym.Title)
	require.Equal(t, 40.0, gym.ActualDurationMinutes)
	require.Equal(t, activity.StatusCompleted, gym.Status)
}

func (s *IntegrationTestSuite) TestTraining_WeeklyAndMetrics() {
	ctx := context.Background()
	t := s.T()

	var weekly training.WeeklyReport
	require.Equal(t, http.StatusOK, s.getJSON(ctx, "/training/weekly", &weekly))
	require.NotEmpty(t, weekly.Weeks)
	require.Equal(t, "2024-05-11", weekly.Weeks[0].WeekEnding.String())
	require.Equal(t, 2, weekly.Weeks[0].CompletedCount)

	var list training.MetricsListResponse
	require.Equal(t, http.StatusOK, s.getJSON(ctx, "/training/metrics", &list))
	require.NotEmpty(t, list.Metrics)

	require.Equal(t, http.StatusNotFound, s.getJSON(ctx, "/training/metrics/made_up", nil))
	require.Equal(t, http.StatusBadRequest, s.getJSON(ctx, "/training/rolling/abc", nil))

	var compliance training.ComplianceReport
	path := fmt.Sprintf("/training/compliance?from=%s&to=%s", "2024-05-05", "2024-05-08")
	require.Equal(t, http.StatusOK, s.getJSON(ctx, path, &compliance))
	require.Equal(t, 150.0, compliance.Summary.PlannedMinutes)
	require.Equal(t, 148.0, compliance.Summary.ActualMinutes)
	require.Equal(t, 99, compliance.Summary.Duration.Pct)
}
