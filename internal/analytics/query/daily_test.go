package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
)

func TestDailySummaryFillsGapsAndCountsDistinctOrders(t *testing.T) {
	at := func(d, hour int) *time.Time {
		ts := time.Date(2017, 11, d, hour, 0, 0, 0, time.UTC)
		return &ts
	}
	records := []dataset.OrderRecord{
		{OrderID: "o-1", Price: decimal.NewFromInt(10), OrderApprovedAt: at(24, 9)},
		{OrderID: "o-1", Price: decimal.RequireFromString("2.5"), OrderApprovedAt: at(24, 9)},
		{OrderID: "o-2", Price: decimal.NewFromInt(4), OrderApprovedAt: at(24, 23)},
		{OrderID: "o-3", Price: decimal.NewFromInt(7), OrderApprovedAt: at(27, 1)},
		{OrderID: "o-4", Price: decimal.NewFromInt(99)},
	}

	points, orders, revenue := dailySummary(records)
	if len(points) != 4 {
		t.Fatalf("expected 4 days from 24th to 27th, got %d", len(points))
	}
	if points[0].Date != "2017-11-24" || points[0].OrderCount != 2 || points[0].Revenue != 16.5 {
		t.Fatalf("unexpected first day: %+v", points[0])
	}
	for _, idle := range points[1:3] {
		if idle.OrderCount != 0 || idle.Revenue != 0 {
			t.Fatalf("expected idle day to be zero, got %+v", idle)
		}
	}
	if points[3].Date != "2017-11-27" || points[3].OrderCount != 1 {
		t.Fatalf("unexpected last day: %+v", points[3])
	}
	if orders != 3 {
		t.Fatalf("expected 3 orders, got %d", orders)
	}
	if !revenue.Equal(decimal.RequireFromString("23.5")) {
		t.Fatalf("expected revenue 23.5, got %s", revenue)
	}
}

func TestDailySummaryEmpty(t *testing.T) {
	points, orders, revenue := dailySummary(nil)
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil series, got %#v", points)
	}
	if orders != 0 || !revenue.IsZero() {
		t.Fatalf("expected zero totals, got %d / %s", orders, revenue)
	}
}
