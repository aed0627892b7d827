package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	failures    *prometheus.CounterVec
	latency     prometheus.Histogram
	requests    *prometheus.HistogramVec
}

// NewMetrics registers the service collectors plus Go runtime collectors.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed credit risk assessments by risk class.",
		}, []string{"class"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_failures_total",
			Help:      "Failed credit risk assessments by error kind.",
		}, []string{"kind"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Time to validate, encode and classify one applicant.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.assessments, m.failures, m.latency, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// AssessmentCompleted records one successful assessment.
func (m *Metrics) AssessmentCompleted(label int, elapsed time.Duration) {
	class := "bad"
	if label == 1 {
		class = "good"
	}
	m.assessments.WithLabelValues(class).Inc()
	m.latency.Observe(elapsed.Seconds())
}

// AssessmentFailed records one failed assessment.
func (m *Metrics) AssessmentFailed(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
