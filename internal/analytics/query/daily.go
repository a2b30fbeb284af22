package query

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
)

type dayBucket struct {
	orders  map[string]struct{}
	revenue decimal.Decimal
}

// dailySummary buckets records by approval day. Every day between the first
// and last active day gets a point; idle days carry zero orders and revenue.
func dailySummary(records []dataset.OrderRecord) ([]types.DailyPoint, int64, decimal.Decimal) {
	buckets := make(map[string]*dayBucket)
	var first, last time.Time
	seen := false

	for _, rec := range records {
		if rec.OrderApprovedAt == nil {
			continue
		}
		day := dataset.CalendarDay(*rec.OrderApprovedAt)
		key := day.Format(config.DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{orders: make(map[string]struct{})}
			buckets[key] = b
		}
		b.orders[rec.OrderID] = struct{}{}
		b.revenue = b.revenue.Add(rec.Price)

		if !seen || day.Before(first) {
			first = day
		}
		if !seen || day.After(last) {
			last = day
		}
		seen = true
	}

	points := []types.DailyPoint{}
	totalRevenue := decimal.Zero
	var totalOrders int64
	if !seen {
		return points, totalOrders, totalRevenue
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		key := day.Format(config.DateLayout)
		point := types.DailyPoint{Date: key}
		if b, ok := buckets[key]; ok {
			point.OrderCount = int64(len(b.orders))
			point.Revenue = b.revenue.InexactFloat64()
			totalOrders += point.OrderCount
			totalRevenue = totalRevenue.Add(b.revenue)
		}
		points = append(points, point)
	}
	return points, totalOrders, totalRevenue
}
