package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	analysesTotal     *prometheus.CounterVec
	tokensPerAnalysis prometheus.Histogram
	lexiconSize       prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry, so several
// servers can live in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afinn_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "afinn_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afinn_analyses_total",
			Help: "Total analyses by kind and outcome.",
		}, []string{"kind", "outcome"}),
		tokensPerAnalysis: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "afinn_analysis_tokens",
			Help:    "Histogram of token counts per analyzed text.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		lexiconSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "afinn_lexicon_words",
			Help: "Number of words in the loaded lexicon.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.analysesTotal,
		m.tokensPerAnalysis,
		m.lexiconSize,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request count and latency for route.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(duration)
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Analysis records one analysis attempt.
func (m *Metrics) Analysis(kind string, tokens int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.analysesTotal.WithLabelValues(kind, outcome).Inc()
	if err == nil {
		m.tokensPerAnalysis.Observe(float64(tokens))
	}
}

// SetLexiconSize records the number of words in the served lexicon.
func (m *Metrics) SetLexiconSize(n int) {
	m.lexiconSize.Set(float64(n))
}
