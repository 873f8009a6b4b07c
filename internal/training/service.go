package training

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	telemetry "github.com/2beens/trainingdash/internal/telemetry/metrics"
	"github.com/2beens/trainingdash/internal/telemetry/tracing"
	"github.com/2beens/trainingdash/internal/training/activity"
	"github.com/2beens/trainingdash/internal/training/compliance"
	"github.com/2beens/trainingdash/internal/training/export"
	"github.com/2beens/trainingdash/internal/training/metrics"
	"github.com/2beens/trainingdash/internal/training/source"
	"github.com/2beens/trainingdash/internal/training/trends"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNoData is returned when the sources could not be loaded. Nothing is
// rendered from a partial dataset.
var ErrNoData = errors.New("no data")

// RollingSteps is the number of weekly points in a rolling compliance trend.
const RollingSteps = 12

type datasetLoader interface {
	Load(ctx context.Context) (source.Dataset, error)
}

type ServiceParams struct {
	Loader      datasetLoader
	Definitions metrics.Definitions
	// Adherence is the optional precomputed compliance file.
	Adherence  *compliance.Adherence
	Thresholds trends.Thresholds
	Location   *time.Location
	Now        func() time.Time
	Metrics    *telemetry.Manager
}

// Service runs the whole pipeline (load, normalize, merge, analyze) on each call.
// It holds no mutable state.
type Service struct {
	loader     datasetLoader
	normalizer *activity.Normalizer
	extractor  *metrics.Extractor
	adherence  *compliance.Adherence
	thresholds trends.Thresholds
	loc        *time.Location
	now        func() time.Time
	metrics    *telemetry.Manager
}

func NewService(params ServiceParams) *Service {
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	metricsManager := params.Metrics
	if metricsManager == nil {
		// unregistered collectors, nothing is exported
		metricsManager = telemetry.NewManager("trainingdash", "training", nil)
	}
	return &Service{
		loader:     params.Loader,
		normalizer: activity.NewNormalizer(loc),
		extractor:  metrics.NewExtractor(params.Definitions),
		adherence:  params.Adherence,
		thresholds: params.Thresholds,
		loc:        loc,
		now:        now,
		metrics:    metricsManager,
	}
}

// Today is the current civil date in the configured time zone.
func (s *Service) Today() activity.CivilDate {
	return activity.CivilDateOf(s.now().In(s.loc))
}

// pipeline loads both streams and returns the merged activities sorted by date.
func (s *Service) pipeline(ctx context.Context) (_ []activity.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.pipeline")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	defer func() {
		s.metrics.HistPipelineDuration.Observe(time.Since(start).Seconds())
	}()

	dataset, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.CounterSourceLoads.WithLabelValues(telemetry.LoadResultFailed).Inc()
		log.Errorf("training pipeline: load sources: %s", err)
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	s.metrics.CounterSourceLoads.WithLabelValues(telemetry.LoadResultOK).Inc()

	planned, plannedReport := s.normalizer.NormalizeWithReport(dataset.Planned)
	actuals, actualsReport := s.normalizer.NormalizeWithReport(dataset.Actuals)
	s.reportFallbacks("planned", plannedReport)
	s.reportFallbacks("actuals", actualsReport)

	merged := activity.SortByDate(activity.Merge(planned, actuals))
	s.metrics.GaugeActivities.Set(float64(len(merged)))
	span.SetAttributes(attribute.Int("activities", len(merged)))

	return merged, nil
}

func (s *Service) reportFallbacks(stream string, report activity.NormalizeReport) {
	if report.InvalidDates == 0 && report.UnknownSports == 0 {
		return
	}
	log.Warnf("training pipeline: %s stream normalized with fallbacks: %s", stream, report)
	s.metrics.CounterParseFallbacks.WithLabelValues(telemetry.FallbackInvalidDate).Add(float64(report.InvalidDates))
	s.metrics.CounterParseFallbacks.WithLabelValues(telemetry.FallbackUnknownSport).Add(float64(report.UnknownSports))
}

// Activities returns the merged activities dated within [from, to], sorted by
// date. An invalid bound leaves that side of the range open.
func (s *Service) Activities(ctx context.Context, from, to activity.CivilDate) ([]activity.Activity, error) {
	all, err := s.pipeline(ctx)
	if err != nil {
		return nil, err
	}
	return activity.FilterRange(all, from, to), nil
}

type MetricInfo struct {
	Key        string             `json:"key"`
	Kind       metrics.Kind       `json:"kind"`
	Definition metrics.Definition `json:"definition"`
}

// Metrics lists every known metric with its configured definition.
func (s *Service) Metrics() []MetricInfo {
	keys := metrics.Keys()
	sort.Strings(keys)

	infos := make([]MetricInfo, 0, len(keys))
	for _, key := range keys {
		series, err := s.extractor.Extract(nil, key)
		if err != nil {
			continue
		}
		def, _ := s.extractor.Definition(key)
		infos = append(infos, MetricInfo{
			Key:        key,
			Kind:       series.Kind,
			Definition: def,
		})
	}
	return infos
}

// Series returns the date-sorted series for key and its definition.
func (s *Service) Series(ctx context.Context, key string) (metrics.Series, metrics.Definition, error) {
	all, err := s.pipeline(ctx)
	if err != nil {
		return metrics.Series{}, metrics.Definition{}, err
	}

	series, err := s.extractor.Extract(all, key)
	if err != nil {
		return metrics.Series{}, metrics.Definition{}, err
	}
	def, _ := s.extractor.Definition(key)
	return series.Sorted(), def, nil
}

// Metric returns the series for key with its trend and latest assessment.
func (s *Service) Metric(ctx context.Context, key string) (export.Document, error) {
	series, def, err := s.Series(ctx, key)
	if err != nil {
		return export.Document{}, err
	}
	return export.NewDocument(series, def), nil
}

type WeeklyReport struct {
	Weeks         []trends.WeekBucket `json:"weeks"`
	PerfectStreak int                 `json:"perfectStreak"`
	VolumeStreak  int                 `json:"volumeStreak"`
	Summary       compliance.Summary  `json:"summary"`
}

func (s *Service) Weekly(ctx context.Context) (WeeklyReport, error) {
	all, err := s.pipeline(ctx)
	if err != nil {
		return WeeklyReport{}, err
	}

	today := s.Today()
	buckets := trends.WeeklyBucket(all)
	weeks := buckets.Sorted()
	return WeeklyReport{
		Weeks:         weeks,
		PerfectStreak: trends.Streak(buckets, today, trends.PerfectWeek),
		VolumeStreak:  trends.Streak(buckets, today, trends.VolumeWeek),
		Summary:       compliance.Summarize(weeks),
	}, nil
}

type ComplianceReport struct {
	From    activity.CivilDate `json:"from"`
	To      activity.CivilDate `json:"to"`
	Summary compliance.Summary `json:"summary"`
	// Mismatches lists the precomputed values that disagree with the computed ones.
	Mismatches []compliance.Mismatch `json:"mismatches,omitempty"`
}

// Compliance computes the duration and count compliance of [from, to]. Over
// the whole dataset the result is also checked against the precomputed
// adherence file; the computed values are always the ones returned.
func (s *Service) Compliance(ctx context.Context, from, to activity.CivilDate) (_ ComplianceReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.compliance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := s.pipeline(ctx)
	if err != nil {
		return ComplianceReport{}, err
	}

	inRange := activity.FilterRange(all, from, to)
	report := ComplianceReport{
		From:    from,
		To:      to,
		Summary: compliance.Summarize(trends.WeeklyBucket(inRange).Sorted()),
	}

	if s.adherence != nil && !from.IsValid() && !to.IsValid() {
		report.Mismatches = s.validateAdherence(all, report.Summary.Result)
	}
	span.SetAttributes(attribute.Int("mismatches", len(report.Mismatches)))

	return report, nil
}

func (s *Service) validateAdherence(all []activity.Activity, computed compliance.Result) []compliance.Mismatch {
	var rolling []compliance.RollingPoint
	for _, trend := range s.adherence.RollingTrends {
		rolling = append(rolling, compliance.Rolling(all, trend.WindowDays, trend.Date, 1)...)
	}

	mismatches := compliance.Validate(*s.adherence, computed, rolling)
	for _, m := range mismatches {
		log.Warnf("adherence file mismatch: %s", m)
	}
	s.metrics.CounterAdherenceMismatches.Add(float64(len(mismatches)))
	return mismatches
}

// Volume compares this week's actual minutes with last week's per category.
func (s *Service) Volume(ctx context.Context) ([]trends.VolumeChange, error) {
	all, err := s.pipeline(ctx)
	if err != nil {
		return nil, err
	}
	return trends.VolumeChanges(all, s.Today(), s.thresholds), nil
}

// Progress summarizes the current Monday-start week.
func (s *Service) Progress(ctx context.Context) (trends.Progress, error) {
	all, err := s.pipeline(ctx)
	if err != nil {
		return trends.Progress{}, err
	}
	return trends.WeekProgress(all, s.Today()), nil
}

// Rolling returns the weekly-spaced rolling compliance trend ending today.
func (s *Service) Rolling(ctx context.Context, windowDays int) ([]compliance.RollingPoint, error) {
	all, err := s.pipeline(ctx)
	if err != nil {
		return nil, err
	}
	return compliance.Rolling(all, windowDays, s.Today(), RollingSteps), nil
}
