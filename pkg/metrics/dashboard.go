package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
)

// DashboardMetrics records dashboard pipeline runs.
type DashboardMetrics struct {
	duration     *prometheus.HistogramVec
	queries      *prometheus.CounterVec
	filteredRows prometheus.Gauge
}

// NewDashboardMetrics registers the dashboard metrics on the provided registerer.
// A nil registerer yields a no-op value.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	if reg == nil {
		return &DashboardMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_duration_seconds",
		Help:    "Duration of dashboard pipeline runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_queries_total",
		Help: "Dashboard queries by outcome.",
	}, []string{"outcome"})
	filteredRows := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_filtered_rows",
		Help: "Records inside the most recently queried date range.",
	})
	reg.MustRegister(duration, queries, filteredRows)
	return &DashboardMetrics{
		duration:     duration,
		queries:      queries,
		filteredRows: filteredRows,
	}
}

// ObserveQuery records one pipeline run.
func (d *DashboardMetrics) ObserveQuery(outcome string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	d.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	d.queries.WithLabelValues(outcome).Inc()
}

// SetFilteredRows records the size of the last filtered dataset.
func (d *DashboardMetrics) SetFilteredRows(n int) {
	if d == nil || d.filteredRows == nil {
		return
	}
	d.filteredRows.Set(float64(n))
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
