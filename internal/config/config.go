package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/trainingdash/internal/training/trends"

	"github.com/BurntSushi/toml"
)

var ErrEnvNotConfigured = errors.New("env not configured")

type Config struct {
	Host        string
	Port        int
	Environment string
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// postgres, used by the gym sets source
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	WidgetStateTTLHours    int      `toml:"widget_state_ttl_hours"`

	// TimeZone resolves epoch timestamps and "today"; empty means the host zone.
	TimeZone string `toml:"time_zone"`

	// training data sources, each a local path or an http(s) URL
	ActivitiesSources []string `toml:"activities_sources"`
	PlannedSources    []string `toml:"planned_sources"`
	DefinitionsPath   string   `toml:"definitions_path"`
	AdherencePath     string   `toml:"adherence_path"`
	FITDir            string   `toml:"fit_dir"`

	GymSetsEnabled      bool `toml:"gym_sets_enabled"`
	GymSetsLookbackDays int  `toml:"gym_sets_lookback_days"`

	SourceCacheSizeMB     int `toml:"source_cache_size_mb"`
	SourceCacheTTLSeconds int `toml:"source_cache_ttl_seconds"`

	VolumeThresholds *trends.Thresholds `toml:"volume_thresholds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvNotConfigured, env)
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	defaults := trends.DefaultThresholds()
	if c.VolumeThresholds == nil {
		c.VolumeThresholds = &defaults
	} else {
		// a partial table only overrides the categories it names
		t := c.VolumeThresholds
		for _, f := range []struct {
			value *float64
			def   float64
		}{
			{&t.Running, defaults.Running},
			{&t.Cycling, defaults.Cycling},
			{&t.Swimming, defaults.Swimming},
			{&t.Strength, defaults.Strength},
			{&t.Total, defaults.Total},
		} {
			if *f.value <= 0 {
				*f.value = f.def
			}
		}
	}
	if c.SourceCacheSizeMB <= 0 {
		c.SourceCacheSizeMB = 10
	}
	if c.WidgetStateTTLHours <= 0 {
		c.WidgetStateTTLHours = 24 * 30
	}
	if c.RateLimitAllowedPerMin <= 0 {
		c.RateLimitAllowedPerMin = 120
	}
}

// Location returns the configured time zone, falling back to the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %s: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c *Config) SourceCacheTTL() time.Duration {
	return time.Duration(c.SourceCacheTTLSeconds) * time.Second
}

func (c *Config) WidgetStateTTL() time.Duration {
	return time.Duration(c.WidgetStateTTLHours) * time.Hour
}
