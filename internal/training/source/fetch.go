package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/2beens/trainingdash/internal/telemetry/tracing"
	"github.com/2beens/trainingdash/internal/training/activity"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// JSONSource reads a JSON array of records from a local path or an http(s) URL.
// Fetched bytes are kept in the cache for ttl; decoded records never are.
type JSONSource struct {
	name       string
	location   string
	httpClient httpClient
	cache      *freecache.Cache
	ttl        time.Duration
}

func NewJSONSource(
	name, location string,
	httpClient httpClient,
	cache *freecache.Cache,
	ttl time.Duration,
) *JSONSource {
	return &JSONSource{
		name:       name,
		location:   location,
		httpClient: httpClient,
		cache:      cache,
		ttl:        ttl,
	}
}

func (s *JSONSource) Name() string {
	return s.name
}

func (s *JSONSource) Records(ctx context.Context) (_ []activity.RawRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "source.json.records")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("location", s.location))

	data, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var records []activity.RawRecord
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.location, err)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func (s *JSONSource) fetch(ctx context.Context) ([]byte, error) {
	cacheKey := []byte(s.location)
	if s.cache != nil {
		if data, err := s.cache.Get(cacheKey); err == nil {
			log.Tracef("source %s: cache hit", s.name)
			return data, nil
		}
	}

	var data []byte
	var err error
	if isRemote(s.location) {
		data, err = s.fetchRemote(ctx)
	} else {
		data, err = os.ReadFile(s.location)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.location, err)
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(cacheKey, data, int(s.ttl.Seconds())); err != nil {
			// too large for the cache, serve it uncached
			log.Warnf("source %s: cache set: %s", s.name, err)
		}
	}

	return data, nil
}

func (s *JSONSource) fetchRemote(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("source %s: close response body: %s", s.name, err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
