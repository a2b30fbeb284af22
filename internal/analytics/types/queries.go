package types

import "time"

// NoData is shown in place of a metric that has no defined value.
const NoData = "no data"

// DashboardQueryRequest carries the calendar dates selected on the dashboard.
// Both bounds are inclusive; only the date part is used.
type DashboardQueryRequest struct {
	Start time.Time
	End   time.Time
}

// DateRange echoes the effective range back to the client.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Valid bool   `json:"valid"`
}

// DailyPoint is one day of the daily order summary.
type DailyPoint struct {
	Date       string  `json:"date"`
	OrderCount int64   `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// LabelValue is one row of a ranked view, e.g. a product or a state.
type LabelValue struct {
	Label string   `json:"label"`
	Keys  []string `json:"keys"`
	Value float64  `json:"value"`
}

// Metric is a scalar card. Value is nil and Display is NoData when undefined.
type Metric struct {
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// Money is an amount with its locale-formatted rendering.
type Money struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// RFMRow is one customer's recency, frequency and monetary values.
type RFMRow struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

// RFMSummary holds the three metric cards.
type RFMSummary struct {
	AverageRecency   Metric `json:"average_recency"`
	AverageFrequency Metric `json:"average_frequency"`
	AverageMonetary  Metric `json:"average_monetary"`
}

// RFMBlock groups the customer table, the top-5 lists and the summary cards.
type RFMBlock struct {
	Customers    []RFMRow   `json:"customers"`
	TopRecency   []RFMRow   `json:"top_recency"`
	TopFrequency []RFMRow   `json:"top_frequency"`
	TopMonetary  []RFMRow   `json:"top_monetary"`
	Summary      RFMSummary `json:"summary"`
}

// RowCounts reports how many records fed the computation.
type RowCounts struct {
	InRange           int `json:"in_range"`
	MissingApprovedAt int `json:"missing_approved_at"`
}

// DashboardQueryResponse is everything the dashboard renders for one range.
type DashboardQueryResponse struct {
	Range        DateRange               `json:"range"`
	Currency     string                  `json:"currency"`
	DailyOrders  []DailyPoint            `json:"daily_orders"`
	TotalOrders  int64                   `json:"total_orders"`
	TotalRevenue Money                   `json:"total_revenue"`
	Views        map[string][]LabelValue `json:"views"`
	RFM          RFMBlock                `json:"rfm"`
	Rows         RowCounts               `json:"rows"`
}
