package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Row outcomes recorded in rows_total.
const (
	StatusEvaluated = "evaluated"
	StatusFiltered  = "filtered"
	StatusFailed    = "failed"
)

// Collector owns the worker's metrics and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	rowsTotal          *prometheus.CounterVec
	ruleMatchesTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
}

// NewCollector creates and registers the metrics. If registry is nil a new
// registry is created.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_total",
				Help:      "Total number of data rows received, by outcome",
			},
			[]string{"status"},
		),

		ruleMatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_matches_total",
				Help:      "Total number of rows for which a rule evaluated to true",
			},
			[]string{"rule"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Time spent checking one row against all rules",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
		),
	}

	registry.MustRegister(
		c.rowsTotal,
		c.ruleMatchesTotal,
		c.evaluationDuration,
	)

	return c
}

// RecordEvaluation records one checked row. Rule labels are rule indexes.
func (c *Collector) RecordEvaluation(results []bool, duration time.Duration, err error) {
	c.evaluationDuration.Observe(duration.Seconds())

	if err != nil {
		c.rowsTotal.WithLabelValues(StatusFailed).Inc()
		return
	}

	c.rowsTotal.WithLabelValues(StatusEvaluated).Inc()
	for i, matched := range results {
		if matched {
			c.ruleMatchesTotal.WithLabelValues(strconv.Itoa(i)).Inc()
		}
	}
}

// RecordFiltered records a row rejected by the row filter.
func (c *Collector) RecordFiltered() {
	c.rowsTotal.WithLabelValues(StatusFiltered).Inc()
}

// RecordFailed records a row that could not be decoded or filtered.
func (c *Collector) RecordFailed() {
	c.rowsTotal.WithLabelValues(StatusFailed).Inc()
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
