package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/commerce-dashboard/internal/analytics/query"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/currency"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
	"github.com/angelmondragon/commerce-dashboard/pkg/metrics"
)

// Service provides dashboard reports over the loaded dataset.
type Service interface {
	// Query returns every dashboard view for the provided date range.
	Query(ctx context.Context, req types.DashboardQueryRequest) (*types.DashboardQueryResponse, error)
}

type service struct {
	dashboard query.DashboardService
	logg      *logger.Logger
	metrics   *metrics.DashboardMetrics
	now       func() time.Time
}

// NewService builds an analytics service over data.
func NewService(data *dataset.Dataset, money *currency.Formatter, logg *logger.Logger, m *metrics.DashboardMetrics) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	dashboard, err := query.NewDashboardService(data, money)
	if err != nil {
		return nil, err
	}
	return &service{dashboard: dashboard, logg: logg, metrics: m, now: time.Now}, nil
}

func (s *service) Query(ctx context.Context, req types.DashboardQueryRequest) (*types.DashboardQueryResponse, error) {
	ctx = s.logg.WithDateRange(ctx, req.Start.Format(config.DateLayout), req.End.Format(config.DateLayout))
	started := s.now()

	resp, err := s.dashboard.Query(ctx, req)
	elapsed := s.now().Sub(started)
	if err != nil {
		s.metrics.ObserveQuery(metrics.OutcomeFailure, elapsed)
		s.logg.Error(ctx, "dashboard.query_failed", err)
		return nil, err
	}

	s.metrics.SetFilteredRows(resp.Rows.InRange)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"rows_in_range": resp.Rows.InRange,
		"total_orders":  resp.TotalOrders,
		"duration_ms":   elapsed.Milliseconds(),
	})

	if resp.Rows.MissingApprovedAt > 0 {
		s.logg.Info(s.logg.WithField(ctx, "missing_approved_at", resp.Rows.MissingApprovedAt), "dashboard.rows_without_timestamp_excluded")
	}

	switch {
	case !resp.Range.Valid:
		s.metrics.ObserveQuery(metrics.OutcomeEmpty, elapsed)
		s.logg.Warn(ctx, "dashboard.range_inverted")
	case resp.Rows.InRange == 0:
		s.metrics.ObserveQuery(metrics.OutcomeEmpty, elapsed)
		s.logg.Info(ctx, "dashboard.range_empty")
	default:
		s.metrics.ObserveQuery(metrics.OutcomeSuccess, elapsed)
		s.logg.Info(ctx, "dashboard.query_complete")
	}
	return resp, nil
}

// LogDatasetQuality reports the load-time data-quality counters of ds.
func LogDatasetQuality(ctx context.Context, logg *logger.Logger, ds *dataset.Dataset) {
	q := ds.Quality()
	ctx = logg.WithFields(ctx, map[string]any{
		"rows_read":            q.RowsRead,
		"rows_rejected":        q.RowsRejected,
		"missing_approved_at":  q.MissingApprovedAt,
		"invalid_approved_at":  q.InvalidApprovedAt,
		"missing_review_score": q.MissingReviewScore,
		"missing_category":     q.MissingCategory,
		"missing_price":        q.MissingPrice,
	})
	if q.HasIssues() {
		logg.Warn(ctx, "dataset.quality_issues")
		return
	}
	logg.Info(ctx, "dataset.loaded")
}
