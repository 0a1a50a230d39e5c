// Package metrics registers the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warehouse"

var gradeBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 85, 90, 100}

type Metrics struct {
	registry *prometheus.Registry

	Evaluations     *prometheus.CounterVec
	Grades          prometheus.Histogram
	SavedProperties prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
}

// New builds a Metrics set on its own registry, so tests can create as many
// as they like without colliding on the global one.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grade_evaluations_total",
			Help:      "Grade recomputations by business type.",
		}, []string{"business_type"}),
		Grades: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grade_value",
			Help:      "Distribution of computed grades.",
			Buckets:   gradeBuckets,
		}),
		SavedProperties: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "saved_properties",
			Help:      "Evaluated properties currently saved.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "status"}),
	}
	m.registry.MustRegister(
		m.Evaluations,
		m.Grades,
		m.SavedProperties,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveGrade records one grade computation.
func (m *Metrics) ObserveGrade(businessType string, grade int) {
	if businessType == "" {
		businessType = "custom"
	}
	m.Evaluations.WithLabelValues(businessType).Inc()
	m.Grades.Observe(float64(grade))
}

func (m *Metrics) SetSaved(n int) { m.SavedProperties.Set(float64(n)) }

func (m *Metrics) ObserveRequest(method, path string, status int) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
