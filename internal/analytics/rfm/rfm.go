// Package rfm derives recency, frequency and monetary metrics per customer.
package rfm

import (
	"sort"
	"time"

	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Row holds one customer's RFM metrics.
type Row struct {
	CustomerID string `json:"customer_id"`
	// Recency is the whole number of days between the customer's latest
	// approval and the latest approval in the dataset.
	Recency   int             `json:"recency"`
	Frequency int             `json:"frequency"`
	Monetary  decimal.Decimal `json:"monetary"`
}

type customer struct {
	id     string
	last   time.Time
	orders map[string]struct{}
	spend  decimal.Decimal
}

// Compute builds one row per customer in first-seen order. Records without a
// customer id or approval timestamp are skipped.
func Compute(records []dataset.OrderRecord) []Row {
	index := make(map[string]*customer)
	var (
		order  []*customer
		latest time.Time
	)
	for _, rec := range records {
		if rec.CustomerID == "" || rec.OrderApprovedAt == nil {
			continue
		}
		ts := *rec.OrderApprovedAt
		c, ok := index[rec.CustomerID]
		if !ok {
			c = &customer{id: rec.CustomerID, last: ts, orders: make(map[string]struct{})}
			index[rec.CustomerID] = c
			order = append(order, c)
		}
		if ts.After(c.last) {
			c.last = ts
		}
		if ts.After(latest) {
			latest = ts
		}
		c.orders[rec.OrderID] = struct{}{}
		c.spend = c.spend.Add(rec.Price)
	}

	rows := make([]Row, 0, len(order))
	for _, c := range order {
		rows = append(rows, Row{
			CustomerID: c.id,
			Recency:    int(latest.Sub(c.last) / day),
			Frequency:  len(c.orders),
			Monetary:   c.spend,
		})
	}
	return rows
}

// Metric selects the value a leaderboard ranks by.
type Metric string

const (
	MetricRecency   Metric = "recency"
	MetricFrequency Metric = "frequency"
	MetricMonetary  Metric = "monetary"
)

// Top returns the first n rows ranked by metric: recency ascending (most recent
// first), frequency and monetary descending. Ties keep the input order. The
// input slice is left untouched.
func Top(rows []Row, metric Metric, n int) []Row {
	ranked := make([]Row, len(rows))
	copy(ranked, rows)

	var less func(a, b Row) bool
	switch metric {
	case MetricRecency:
		less = func(a, b Row) bool { return a.Recency < b.Recency }
	case MetricFrequency:
		less = func(a, b Row) bool { return a.Frequency > b.Frequency }
	case MetricMonetary:
		less = func(a, b Row) bool { return a.Monetary.GreaterThan(b.Monetary) }
	default:
		return nil
	}
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
