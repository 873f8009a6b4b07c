package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Middleware instruments single handlers (like the /metrics endpoint itself)
// with a per-handler request counter and latency histogram.
type Middleware struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer, buckets []float64) *Middleware {
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}
	factory := promauto.With(reg)
	return &Middleware{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_handler_requests_total",
			Help: "The total number of requests served, by handler",
		}, []string{"handler", "code", "method"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_handler_request_duration_seconds",
			Help:    "Histogram of handler response time in seconds",
			Buckets: buckets,
		}, []string{"handler", "code", "method"}),
	}
}

func (m *Middleware) WrapHandler(handlerName string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"handler": handlerName}
	return promhttp.InstrumentHandlerCounter(
		m.requests.MustCurryWith(labels),
		promhttp.InstrumentHandlerDuration(
			m.duration.MustCurryWith(labels),
			h,
		),
	)
}
