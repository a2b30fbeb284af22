package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestDashboardMetricsExportsCountersHistogramAndGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewDashboardMetrics(reg)
	metrics.ObserveQuery(OutcomeSuccess, 250*time.Millisecond)
	metrics.ObserveQuery(OutcomeSuccess, 50*time.Millisecond)
	metrics.ObserveQuery(OutcomeFailure, time.Millisecond)
	metrics.SetFilteredRows(42)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "dashboard_queries_total", "outcome", OutcomeSuccess); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "dashboard_queries_total", "outcome", OutcomeFailure); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "dashboard_query_duration_seconds", "outcome", OutcomeSuccess); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	gauge := findMetricFamily(mfs, "dashboard_filtered_rows")
	if gauge == nil || len(gauge.GetMetric()) != 1 {
		t.Fatalf("filtered rows gauge not exported")
	}
	if got := gauge.GetMetric()[0].GetGauge().GetValue(); got != 42 {
		t.Fatalf("expected filtered rows=42, got %f", got)
	}
}

func TestDashboardMetricsNilSafe(t *testing.T) {
	var nilMetrics *DashboardMetrics
	nilMetrics.ObserveQuery(OutcomeSuccess, time.Second)
	nilMetrics.SetFilteredRows(1)

	unregistered := NewDashboardMetrics(nil)
	unregistered.ObserveQuery("", time.Second)
	unregistered.SetFilteredRows(1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
