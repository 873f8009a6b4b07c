package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/trainingdash/internal/telemetry/tracing"
	"github.com/2beens/trainingdash/internal/training/activity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=source_test

// GymSet is one logged strength set.
type GymSet struct {
	ID          int               `json:"id"`
	ExerciseID  string            `json:"exerciseId"`
	MuscleGroup string            `json:"muscleGroup"`
	Kilos       int               `json:"kilos"`
	Reps        int               `json:"reps"`
	CreatedAt   time.Time         `json:"createdAt"`
	Metadata    map[string]string `json:"metadata"`
}

type SetParams struct {
	From               *time.Time
	ExcludeTestingData bool
}

type gymSetsRepo interface {
	ListSets(ctx context.Context, params SetParams) ([]GymSet, error)
}

type GymSetsRepo struct {
	db *pgxpool.Pool
}

func NewGymSetsRepo(db *pgxpool.Pool) *GymSetsRepo {
	return &GymSetsRepo{
		db: db,
	}
}

// ListSets returns the logged sets in ascending time order.
func (r *GymSetsRepo) ListSets(ctx context.Context, params SetParams) (_ []GymSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymsets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("exclude-testing-data", params.ExcludeTestingData))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				e.id, e.exercise_id, e.muscle_group, e.kilos, e.reps, e.metadata, e.created_at
			FROM exercise e
				WHERE ($1::timestamp IS NULL OR e.created_at >= $1)
				AND ($2::boolean IS FALSE OR COALESCE(e.metadata->>'testing', '') != 'true')
			ORDER BY e.created_at ASC;`,
		params.From, params.ExcludeTestingData,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets, err := rows2sets(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sets: %w", err)
	}
	return sets, nil
}

func rows2sets(rows pgx.Rows) ([]GymSet, error) {
	var sets []GymSet
	for rows.Next() {
		var set GymSet
		if err := rows.Scan(
			&set.ID, &set.ExerciseID, &set.MuscleGroup,
			&set.Kilos, &set.Reps, &set.Metadata, &set.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// GymSetsSource turns each training day of logged sets into one completed Strength activity.
type GymSetsSource struct {
	repo         gymSetsRepo
	location     *time.Location
	lookbackDays int
	now          func() time.Time
}

func NewGymSetsSource(repo gymSetsRepo, location *time.Location, lookbackDays int) *GymSetsSource {
	if location == nil {
		location = time.Local
	}
	return &GymSetsSource{
		repo:         repo,
		location:     location,
		lookbackDays: lookbackDays,
		now:          time.Now,
	}
}

func (s *GymSetsSource) Name() string {
	return "gymsets"
}

func (s *GymSetsSource) Records(ctx context.Context) (_ []activity.RawRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "source.gymsets.records")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	params := SetParams{ExcludeTestingData: true}
	if s.lookbackDays > 0 {
		from := s.now().AddDate(0, 0, -s.lookbackDays)
		params.From = &from
	}

	sets, err := s.repo.ListSets(ctx, params)
	if err != nil {
		return nil, err
	}

	records := SetsToRecords(sets, s.location)
	span.SetAttributes(
		attribute.Int("sets", len(sets)),
		attribute.Int("records", len(records)),
	)
	return records, nil
}

// SetsToRecords groups sets by local calendar day. The session duration spans
// the first to the last set of the day.
func SetsToRecords(sets []GymSet, location *time.Location) []activity.RawRecord {
	if location == nil {
		location = time.Local
	}

	var days []activity.CivilDate
	day2sets := make(map[activity.CivilDate][]GymSet)
	for _, set := range sets {
		day := activity.CivilDateOf(set.CreatedAt.In(location))
		if _, ok := day2sets[day]; !ok {
			days = append(days, day)
		}
		day2sets[day] = append(day2sets[day], set)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	records := make([]activity.RawRecord, 0, len(days))
	for _, day := range days {
		daySets := day2sets[day]
		sort.Slice(daySets, func(i, j int) bool {
			return daySets[i].CreatedAt.Before(daySets[j].CreatedAt)
		})

		var groups []string
		seenGroups := map[string]bool{}
		var volumeKg int
		for _, set := range daySets {
			if !seenGroups[set.MuscleGroup] {
				seenGroups[set.MuscleGroup] = true
				groups = append(groups, set.MuscleGroup)
			}
			volumeKg += set.Kilos * set.Reps
		}

		first, last := daySets[0].CreatedAt, daySets[len(daySets)-1].CreatedAt
		records = append(records, activity.RawRecord{
			"date":              day.String(),
			"sport":             "strength",
			"activityName":      "Gym: " + strings.Join(groups, ", "),
			"durationInSeconds": last.Sub(first).Seconds(),
			"status":            activity.StatusCompleted,
			"sets":              len(daySets),
			"volumeKg":          volumeKg,
		})
	}
	return records
}
