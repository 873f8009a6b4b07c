package source

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/2beens/trainingdash/internal/telemetry/tracing"
	"github.com/2beens/trainingdash/internal/training/activity"

	log "github.com/sirupsen/logrus"
	"github.com/tormoder/fit"
	"go.opentelemetry.io/otel/attribute"
)

// FITSource reads the sessions of every .fit file in a directory as completed activities.
type FITSource struct {
	dir      string
	location *time.Location
}

func NewFITSource(dir string, location *time.Location) *FITSource {
	if location == nil {
		location = time.Local
	}
	return &FITSource{
		dir:      dir,
		location: location,
	}
}

func (s *FITSource) Name() string {
	return "fit:" + s.dir
}

func (s *FITSource) Records(ctx context.Context) (_ []activity.RawRecord, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "source.fit.records")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read fit dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".fit") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)

	var records []activity.RawRecord
	for _, path := range paths {
		fileRecords, err := s.decodeFile(path)
		if err != nil {
			// corrupt files are skipped, the directory itself must be readable
			log.Warnf("skipping fit file %s: %s", path, err)
			continue
		}
		records = append(records, fileRecords...)
	}

	span.SetAttributes(
		attribute.Int("files", len(paths)),
		attribute.Int("records", len(records)),
	)
	return records, nil
}

func (s *FITSource) decodeFile(path string) ([]activity.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	activityFile, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity file expected: %w", err)
	}

	records := make([]activity.RawRecord, 0, len(activityFile.Sessions))
	for _, session := range activityFile.Sessions {
		records = append(records, SessionRecord(session, s.location))
	}
	return records, nil
}

// SessionRecord maps a FIT session onto the raw record field names the normalizer knows.
// Invalid FIT values are left out.
func SessionRecord(session *fit.SessionMsg, location *time.Location) activity.RawRecord {
	rec := activity.RawRecord{
		"sport":  strings.TrimSpace(fmt.Sprintf("%v %v", session.Sport, session.SubSport)),
		"status": activity.StatusCompleted,
		"source": "fit",
	}

	if !session.StartTime.IsZero() && !fit.IsBaseTime(session.StartTime) {
		rec["startTimeLocal"] = session.StartTime.In(location)
	}

	setPositive(rec, "durationInSeconds", session.GetTotalTimerTimeScaled())
	setPositive(rec, "distance", session.GetTotalDistanceScaled())
	setPositive(rec, "trainingStressScore", session.GetTrainingStressScoreScaled())

	speed := session.GetEnhancedAvgSpeedScaled()
	if !isPositive(speed) {
		speed = session.GetAvgSpeedScaled()
	}
	setPositive(rec, "averageSpeed", speed)

	if session.AvgHeartRate != math.MaxUint8 {
		setPositive(rec, "averageHR", float64(session.AvgHeartRate))
	}
	if session.AvgPower != math.MaxUint16 {
		setPositive(rec, "avgPower", float64(session.AvgPower))
	}
	if session.TotalCalories != math.MaxUint16 {
		setPositive(rec, "calories", float64(session.TotalCalories))
	}
	if session.TotalAscent != math.MaxUint16 {
		setPositive(rec, "elevationGain", float64(session.TotalAscent))
	}
	if session.AvgCadence != math.MaxUint8 {
		setPositive(rec, "cadence", float64(session.AvgCadence))
	}

	return rec
}

func setPositive(rec activity.RawRecord, key string, v float64) {
	if isPositive(v) {
		rec[key] = v
	}
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
