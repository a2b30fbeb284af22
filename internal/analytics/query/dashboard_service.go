package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/commerce-dashboard/internal/analytics/aggregate"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics/rfm"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/currency"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
)

// rfmTopN is the length of each RFM leaderboard.
const rfmTopN = 5

// DashboardService computes every dashboard view for a date range.
type DashboardService interface {
	Query(ctx context.Context, req types.DashboardQueryRequest) (*types.DashboardQueryResponse, error)
}

type dashboardService struct {
	data  *dataset.Dataset
	money *currency.Formatter
	views []aggregate.Spec
}

// NewDashboardService builds a service over a loaded dataset.
func NewDashboardService(data *dataset.Dataset, money *currency.Formatter) (DashboardService, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset required")
	}
	if money == nil {
		return nil, fmt.Errorf("currency formatter required")
	}
	views := aggregate.Catalog()
	for _, spec := range views {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}
	return &dashboardService{data: data, money: money, views: views}, nil
}

func (s *dashboardService) Query(ctx context.Context, req types.DashboardQueryRequest) (*types.DashboardQueryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.FromContext(err, "dashboard query")
	}

	window := dataset.NewDateRange(req.Start, req.End)
	resp := s.emptyResponse(window)
	if !window.Valid() {
		return resp, nil
	}

	filtered := dataset.Filter(s.data, window)
	records := filtered.Records()
	resp.Rows = types.RowCounts{
		InRange:           filtered.Len(),
		MissingApprovedAt: filtered.Quality().MissingApprovedAt,
	}

	daily, totalOrders, totalRevenue := dailySummary(records)
	resp.DailyOrders = daily
	resp.TotalOrders = totalOrders
	resp.TotalRevenue = s.moneyValue(totalRevenue)

	for _, spec := range s.views {
		if err := ctx.Err(); err != nil {
			return nil, pkgerrors.FromContext(err, "dashboard query")
		}
		rows, err := aggregate.Aggregate(records, spec)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate view").
				WithDetails(map[string]any{"view": spec.Name})
		}
		resp.Views[spec.Name] = labelValues(rows)
	}

	resp.RFM = s.rfmBlock(rfm.Compute(records))
	return resp, nil
}

func validateRequest(req types.DashboardQueryRequest) error {
	if req.Start.IsZero() || req.End.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "start and end are required")
	}
	return nil
}

// emptyResponse is the shape returned when nothing falls in the range.
func (s *dashboardService) emptyResponse(window dataset.DateRange) *types.DashboardQueryResponse {
	views := make(map[string][]types.LabelValue, len(s.views))
	for _, spec := range s.views {
		views[spec.Name] = []types.LabelValue{}
	}
	return &types.DashboardQueryResponse{
		Range: types.DateRange{
			Start: window.Start.Format(config.DateLayout),
			End:   window.End.Format(config.DateLayout),
			Valid: window.Valid(),
		},
		Currency:     s.money.Code(),
		DailyOrders:  []types.DailyPoint{},
		TotalRevenue: s.moneyValue(decimal.Zero),
		Views:        views,
		RFM:          s.rfmBlock(nil),
	}
}

func (s *dashboardService) moneyValue(amount decimal.Decimal) types.Money {
	rounded := amount.Round(int32(s.money.Scale()))
	return types.Money{Value: rounded.InexactFloat64(), Display: s.money.Format(rounded)}
}

func (s *dashboardService) rfmBlock(rows []rfm.Row) types.RFMBlock {
	summary := rfm.Summarize(rows)
	return types.RFMBlock{
		Customers:    rfmRows(rows),
		TopRecency:   rfmRows(rfm.Top(rows, rfm.MetricRecency, rfmTopN)),
		TopFrequency: rfmRows(rfm.Top(rows, rfm.MetricFrequency, rfmTopN)),
		TopMonetary:  rfmRows(rfm.Top(rows, rfm.MetricMonetary, rfmTopN)),
		Summary: types.RFMSummary{
			AverageRecency:   roundedMetric(summary.AverageRecency),
			AverageFrequency: roundedMetric(summary.AverageFrequency),
			AverageMonetary:  s.moneyMetric(summary.AverageMonetary),
		},
	}
}

func (s *dashboardService) moneyMetric(v *decimal.Decimal) types.Metric {
	if v == nil {
		return types.Metric{Display: types.NoData}
	}
	m := s.moneyValue(*v)
	return types.Metric{Value: &m.Value, Display: m.Display}
}

func roundedMetric(v *decimal.Decimal) types.Metric {
	if v == nil {
		return types.Metric{Display: types.NoData}
	}
	rounded := v.Round(2)
	f := rounded.InexactFloat64()
	return types.Metric{Value: &f, Display: rounded.StringFixed(2)}
}

func labelValues(rows []aggregate.Row) []types.LabelValue {
	out := make([]types.LabelValue, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.LabelValue{Label: r.Label(), Keys: r.Keys, Value: r.Value})
	}
	return out
}

func rfmRows(rows []rfm.Row) []types.RFMRow {
	out := make([]types.RFMRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.RFMRow{
			CustomerID: r.CustomerID,
			Recency:    r.Recency,
			Frequency:  r.Frequency,
			Monetary:   r.Monetary.InexactFloat64(),
		})
	}
	return out
}
