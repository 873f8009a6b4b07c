package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/2beens/trainingdash/internal/training/metrics"
	"github.com/2beens/trainingdash/internal/training/trends"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatParquet Format = "parquet"
	FormatJSON    Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatParquet, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected parquet|json)", ErrUnsupportedFormat, s)
	}
}

type seriesRow struct {
	Date      string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Key       string  `parquet:"name=metric_key, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Kind      string  `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Value     float64 `parquet:"name=value, type=DOUBLE"`
	Secondary float64 `parquet:"name=secondary, type=DOUBLE"`
	Label     string  `parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
	Breakdown string  `parquet:"name=breakdown, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Document is the JSON export of one metric series, points in date order.
type Document struct {
	Key       string            `json:"key"`
	Kind      metrics.Kind      `json:"kind"`
	Title     string            `json:"title,omitempty"`
	Points    []metrics.Point   `json:"points"`
	Trend     *trends.TrendLine `json:"trend,omitempty"`
	Direction string            `json:"direction,omitempty"`
	Latest    *LatestAssessment `json:"latest,omitempty"`
}

type LatestAssessment struct {
	Value      float64 `json:"value"`
	Assessment string  `json:"assessment"`
}

func NewDocument(series metrics.Series, def metrics.Definition) Document {
	sorted := series.Sorted()
	doc := Document{
		Key:    sorted.Key,
		Kind:   sorted.Kind,
		Title:  def.Title,
		Points: sorted.Points,
	}
	if doc.Points == nil {
		doc.Points = []metrics.Point{}
	}
	if trend, ok := trends.LinearTrend(sorted.Values(), trends.MinPointsMetrics); ok {
		doc.Trend = &trend
		doc.Direction = def.Direction(trend.StartValue, trend.EndValue)
	}
	if n := len(sorted.Points); n > 0 {
		last := sorted.Points[n-1].Value
		doc.Latest = &LatestAssessment{
			Value:      last,
			Assessment: def.Assess(last),
		}
	}
	return doc
}

// Write encodes the series in the given format.
func Write(w io.Writer, format Format, series metrics.Series, def metrics.Definition) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(NewDocument(series, def)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatParquet:
		data, err := Parquet(series)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Parquet encodes the series, sorted by date, as a SNAPPY compressed parquet file.
func Parquet(series metrics.Series) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := writeRows(fw, series); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteParquetFile writes the series to a local parquet file at path.
func WriteParquetFile(path string, series metrics.Series) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeRows(fw, series); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func writeRows(fw source.ParquetFile, series metrics.Series) error {
	pw, err := writer.NewParquetWriter(fw, new(seriesRow), 4)
	if err != nil {
		return fmt.Errorf("new parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	sorted := series.Sorted()
	for _, p := range sorted.Points {
		row := seriesRow{
			Date:      p.Date.String(),
			Key:       sorted.Key,
			Kind:      string(sorted.Kind),
			Value:     p.Value,
			Secondary: p.Secondary,
			Label:     p.Label,
			Breakdown: p.Breakdown,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("write stop: %w", err)
	}
	return nil
}
