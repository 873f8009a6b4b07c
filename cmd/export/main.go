package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/trainingdash/internal/config"
	"github.com/2beens/trainingdash/internal/db"
	"github.com/2beens/trainingdash/internal/logging"
	"github.com/2beens/trainingdash/internal/telemetry/metrics"
	"github.com/2beens/trainingdash/internal/training"
	"github.com/2beens/trainingdash/internal/training/export"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type options struct {
	env        string
	configPath string
	metricKey  string
	format     string
	outPath    string
	list       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.env, "env", "development", "environment [prod | production | dev | development]")
	flag.StringVar(&opts.configPath, "config", "./config.toml", "path for the TOML config file")
	flag.StringVar(&opts.metricKey, "metric", "", "metric key to export, e.g. tss")
	flag.StringVar(&opts.format, "format", string(export.FormatParquet), "output format [parquet | json]")
	flag.StringVar(&opts.outPath, "out", "", "output file path (empty for stdout)")
	flag.BoolVar(&opts.list, "list", false, "list the known metric keys and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Errorf("export failed: %s", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, err := config.Load(opts.env, opts.configPath)
	if err != nil {
		return err
	}

	// stdout carries the exported data
	if cfg.LogsPath != "" {
		logging.Setup(logging.LoggerSetupParams{
			LogFileName:   cfg.LogsPath,
			LogLevel:      cfg.LogLevel,
			LogFormatJSON: cfg.LogFormatJSON,
			Environment:   cfg.Environment,
		})
	} else {
		log.SetOutput(os.Stderr)
		log.SetLevel(logging.GetLevel(cfg.LogLevel))
	}

	var dbPool *pgxpool.Pool
	if cfg.GymSetsEnabled {
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: os.Getenv("TRAININGDASH_DB_PASS"),
			MaxConns:   1,
		})
		if err != nil {
			return fmt.Errorf("new db pool: %w", err)
		}
		defer dbPool.Close()
	}

	service, err := training.NewServiceFromConfig(training.SetupParams{
		Config:  cfg,
		DB:      dbPool,
		Metrics: metrics.NewManager("trainingdash", "export", prometheus.NewRegistry()),
	})
	if err != nil {
		return fmt.Errorf("new training service: %w", err)
	}

	if opts.list {
		for _, info := range service.Metrics() {
			title := info.Definition.Title
			if title == "" {
				title = "-"
			}
			if _, err := fmt.Fprintf(stdout, "%s\t%s\t%s\n", info.Key, info.Kind, title); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.TrimSpace(opts.metricKey) == "" {
		return fmt.Errorf("metric key not set, use -metric (or -list to see the keys)")
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	series, def, err := service.Series(ctx, opts.metricKey)
	if err != nil {
		return fmt.Errorf("metric %s: %w", opts.metricKey, err)
	}
	log.Debugf("exporting metric [%s]: %d points as %s", series.Key, len(series.Points), format)

	if opts.outPath == "" {
		return export.Write(stdout, format, series, def)
	}
	if format == export.FormatParquet {
		return export.WriteParquetFile(opts.outPath, series)
	}

	f, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := export.Write(f, format, series, def); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
