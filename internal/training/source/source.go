package source

import (
	"context"
	"fmt"

	"github.com/2beens/trainingdash/internal/telemetry/tracing"
	"github.com/2beens/trainingdash/internal/training/activity"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// RecordSource provides raw records from one origin (file, URL, FIT folder, database).
type RecordSource interface {
	Name() string
	Records(ctx context.Context) ([]activity.RawRecord, error)
}

// Dataset is the raw input of one render: the planned schedule and the activity log.
type Dataset struct {
	Planned []activity.RawRecord
	Actuals []activity.RawRecord
}

type Loader struct {
	planned []RecordSource
	actuals []RecordSource
}

func NewLoader(planned, actuals []RecordSource) *Loader {
	return &Loader{
		planned: planned,
		actuals: actuals,
	}
}

// Load reads every source. A failure of any source fails the whole load,
// so callers never render a partial dataset.
func (l *Loader) Load(ctx context.Context) (_ Dataset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "source.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var dataset Dataset
	var loadErr error

	for _, src := range l.planned {
		records, err := src.Records(ctx)
		if err != nil {
			loadErr = multierr.Append(loadErr, fmt.Errorf("planned source %s: %w", src.Name(), err))
			continue
		}
		dataset.Planned = append(dataset.Planned, records...)
	}
	for _, src := range l.actuals {
		records, err := src.Records(ctx)
		if err != nil {
			loadErr = multierr.Append(loadErr, fmt.Errorf("actuals source %s: %w", src.Name(), err))
			continue
		}
		dataset.Actuals = append(dataset.Actuals, records...)
	}

	span.SetAttributes(
		attribute.Int("records.planned", len(dataset.Planned)),
		attribute.Int("records.actuals", len(dataset.Actuals)),
	)

	if loadErr != nil {
		return Dataset{}, loadErr
	}
	return dataset, nil
}
