package training

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/trainingdash/internal/telemetry/tracing"
	"github.com/2beens/trainingdash/internal/training/activity"
	"github.com/2beens/trainingdash/internal/training/compliance"
	"github.com/2beens/trainingdash/internal/training/export"
	"github.com/2beens/trainingdash/internal/training/metrics"
	"github.com/2beens/trainingdash/internal/training/trends"
	"github.com/2beens/trainingdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=handler.go -destination=handler_mocks_test.go -package=training_test

type trainingService interface {
	Activities(ctx context.Context, from, to activity.CivilDate) ([]activity.Activity, error)
	Metrics() []MetricInfo
	Metric(ctx context.Context, key string) (export.Document, error)
	Weekly(ctx context.Context) (WeeklyReport, error)
	Compliance(ctx context.Context, from, to activity.CivilDate) (ComplianceReport, error)
	Volume(ctx context.Context) ([]trends.VolumeChange, error)
	Progress(ctx context.Context) (trends.Progress, error)
	Rolling(ctx context.Context, windowDays int) ([]compliance.RollingPoint, error)
}

// maxRollingWindowDays caps the rolling window accepted from clients.
const maxRollingWindowDays = 730

type NoDataResponse struct {
	Status string `json:"status"`
}

type ActivitiesResponse struct {
	Activities []activity.Activity `json:"activities"`
	Total      int                 `json:"total"`
}

type MetricsListResponse struct {
	Metrics []MetricInfo `json:"metrics"`
}

type Handler struct {
	service trainingService
}

func NewHandler(service trainingService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/training/activities", handler.HandleActivities).Methods("GET", "OPTIONS").Name("training-activities")
	r.HandleFunc("/training/metrics", handler.HandleMetricsList).Methods("GET", "OPTIONS").Name("training-metrics")
	r.HandleFunc("/training/metrics/{key}", handler.HandleMetric).Methods("GET", "OPTIONS").Name("training-metric")
	r.HandleFunc("/training/weekly", handler.HandleWeekly).Methods("GET", "OPTIONS").Name("training-weekly")
	r.HandleFunc("/training/compliance", handler.HandleCompliance).Methods("GET", "OPTIONS").Name("training-compliance")
	r.HandleFunc("/training/volume", handler.HandleVolume).Methods("GET", "OPTIONS").Name("training-volume")
	r.HandleFunc("/training/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("training-progress")
	r.HandleFunc("/training/rolling/{days}", handler.HandleRolling).Methods("GET", "OPTIONS").Name("training-rolling")
}

func (handler *Handler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.activities")
	defer span.End()

	from, to, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	activities, err := handler.service.Activities(ctx, from, to)
	if err != nil {
		handler.writeError(w, "activities", err)
		return
	}
	pkg.WriteJSON(w, ActivitiesResponse{
		Activities: activities,
		Total:      len(activities),
	}, http.StatusOK)
}

func (handler *Handler) HandleMetricsList(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSON(w, MetricsListResponse{
		Metrics: handler.service.Metrics(),
	}, http.StatusOK)
}

func (handler *Handler) HandleMetric(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.metric")
	defer span.End()

	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "error, metric key empty", http.StatusBadRequest)
		return
	}

	doc, err := handler.service.Metric(ctx, key)
	if err != nil {
		handler.writeError(w, "metric "+key, err)
		return
	}
	pkg.WriteJSON(w, doc, http.StatusOK)
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.weekly")
	defer span.End()

	report, err := handler.service.Weekly(ctx)
	if err != nil {
		handler.writeError(w, "weekly", err)
		return
	}
	pkg.WriteJSON(w, report, http.StatusOK)
}

func (handler *Handler) HandleCompliance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.compliance")
	defer span.End()

	from, to, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := handler.service.Compliance(ctx, from, to)
	if err != nil {
		handler.writeError(w, "compliance", err)
		return
	}
	pkg.WriteJSON(w, report, http.StatusOK)
}

func (handler *Handler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.volume")
	defer span.End()

	changes, err := handler.service.Volume(ctx)
	if err != nil {
		handler.writeError(w, "volume", err)
		return
	}
	pkg.WriteJSON(w, changes, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.progress")
	defer span.End()

	progress, err := handler.service.Progress(ctx)
	if err != nil {
		handler.writeError(w, "progress", err)
		return
	}
	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (handler *Handler) HandleRolling(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.rolling")
	defer span.End()

	daysStr := mux.Vars(r)["days"]
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		http.Error(w, "error, days NaN", http.StatusBadRequest)
		return
	}
	if days <= 0 || days > maxRollingWindowDays {
		http.Error(w, fmt.Sprintf("error, days must be within [1, %d]", maxRollingWindowDays), http.StatusBadRequest)
		return
	}

	points, err := handler.service.Rolling(ctx, days)
	if err != nil {
		handler.writeError(w, "rolling", err)
		return
	}
	pkg.WriteJSON(w, points, http.StatusOK)
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNoData):
		pkg.WriteJSON(w, NoDataResponse{Status: "no_data"}, http.StatusServiceUnavailable)
	case errors.Is(err, metrics.ErrUnknownMetric):
		http.Error(w, "error, unknown metric", http.StatusNotFound)
	default:
		log.Errorf("training %s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// parseRange reads the optional from/to query params (YYYY-MM-DD).
// A missing bound is returned as the invalid date.
func parseRange(r *http.Request) (from, to activity.CivilDate, err error) {
	if from, err = parseDateParam(r, "from"); err != nil {
		return from, to, err
	}
	if to, err = parseDateParam(r, "to"); err != nil {
		return from, to, err
	}
	if from.IsValid() && to.IsValid() && to.Before(from) {
		return from, to, errors.New("error, to is before from")
	}
	return from, to, nil
}

func parseDateParam(r *http.Request, name string) (activity.CivilDate, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return activity.CivilDate{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return activity.CivilDate{}, fmt.Errorf("error, invalid %s date: %s", name, raw)
	}
	return activity.CivilDateOf(t), nil
}
