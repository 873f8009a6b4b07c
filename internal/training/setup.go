package training

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/2beens/trainingdash/internal/config"
	telemetry "github.com/2beens/trainingdash/internal/telemetry/metrics"
	"github.com/2beens/trainingdash/internal/training/compliance"
	"github.com/2beens/trainingdash/internal/training/metrics"
	"github.com/2beens/trainingdash/internal/training/source"
	"github.com/2beens/trainingdash/internal/training/trends"

	"github.com/coocood/freecache"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrGymSetsNoDB = errors.New("gym sets source enabled without a database pool")

const remoteSourceTimeout = 20 * time.Second

type SetupParams struct {
	Config *config.Config
	// DB is only needed when the gym sets source is enabled.
	DB *pgxpool.Pool
	// HTTPClient fetches remote sources; an otel-instrumented client is used when nil.
	HTTPClient *http.Client
	Metrics    *telemetry.Manager
}

// NewServiceFromConfig builds the sources, definitions and adherence file
// named by the config and returns the service reading them.
func NewServiceFromConfig(params SetupParams) (*Service, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   remoteSourceTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	cache := freecache.NewCache(cfg.SourceCacheSizeMB * 1024 * 1024)
	ttl := cfg.SourceCacheTTL()

	var planned []source.RecordSource
	for i, location := range cfg.PlannedSources {
		name := fmt.Sprintf("planned[%d]", i)
		planned = append(planned, source.NewJSONSource(name, location, httpClient, cache, ttl))
	}

	var actuals []source.RecordSource
	for i, location := range cfg.ActivitiesSources {
		name := fmt.Sprintf("activities[%d]", i)
		actuals = append(actuals, source.NewJSONSource(name, location, httpClient, cache, ttl))
	}
	if cfg.FITDir != "" {
		actuals = append(actuals, source.NewFITSource(cfg.FITDir, loc))
	}
	if cfg.GymSetsEnabled {
		if params.DB == nil {
			return nil, ErrGymSetsNoDB
		}
		repo := source.NewGymSetsRepo(params.DB)
		actuals = append(actuals, source.NewGymSetsSource(repo, loc, cfg.GymSetsLookbackDays))
	}
	log.Debugf("training sources: %d planned, %d actuals", len(planned), len(actuals))

	definitions, err := loadDefinitions(cfg.DefinitionsPath)
	if err != nil {
		return nil, err
	}

	thresholds := trends.DefaultThresholds()
	if cfg.VolumeThresholds != nil {
		thresholds = *cfg.VolumeThresholds
	}

	return NewService(ServiceParams{
		Loader:      source.NewLoader(planned, actuals),
		Definitions: definitions,
		Adherence:   loadAdherence(cfg.AdherencePath),
		Thresholds:  thresholds,
		Location:    loc,
		Metrics:     params.Metrics,
	}), nil
}

func loadDefinitions(path string) (metrics.Definitions, error) {
	if path == "" {
		return metrics.Definitions{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metric definitions: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("close metric definitions file: %s", err)
		}
	}()

	definitions, err := metrics.LoadDefinitions(f)
	if err != nil {
		return nil, fmt.Errorf("load metric definitions %s: %w", path, err)
	}
	return definitions, nil
}

// loadAdherence reads the optional precomputed adherence file. It is only
// used for validation, so a missing or broken file is logged and ignored.
func loadAdherence(path string) *compliance.Adherence {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("adherence file not used: %s", err)
		return nil
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("close adherence file: %s", err)
		}
	}()

	adherence, err := compliance.LoadAdherence(f)
	if err != nil {
		log.Warnf("adherence file %s not used: %s", path, err)
		return nil
	}
	return &adherence
}
