package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects HTTP and pipeline instrumentation on its own registry so
// that multiple instances (tests included) never collide.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	uploadsTotal         *prometheus.CounterVec
	pipelineStepDuration *prometheus.HistogramVec
	pipelineStepFailures *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		uploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_uploads_total",
				Help: "Total number of accepted uploads",
			},
			[]string{"target_language", "voice_type"},
		),
		pipelineStepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_step_duration_seconds",
				Help:    "Media pipeline step duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		),
		pipelineStepFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_step_failures_total",
				Help: "Total number of degraded pipeline steps",
			},
			[]string{"step"},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordUpload(targetLanguage, voiceType string) {
	m.uploadsTotal.WithLabelValues(targetLanguage, voiceType).Inc()
}

func (m *Metrics) RecordPipelineStep(step string, duration time.Duration, failed bool) {
	m.pipelineStepDuration.WithLabelValues(step).Observe(duration.Seconds())
	if failed {
		m.pipelineStepFailures.WithLabelValues(step).Inc()
	}
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
