package rfm

import "github.com/shopspring/decimal"

// Summary holds the mean of each RFM metric. Averages are nil when there are
// no customers, which callers must render as "no data".
type Summary struct {
	Customers        int
	AverageRecency   *decimal.Decimal
	AverageFrequency *decimal.Decimal
	AverageMonetary  *decimal.Decimal
}

// NoData reports whether the averages are undefined.
func (s Summary) NoData() bool {
	return s.Customers == 0
}

// Summarize averages the three metrics across rows.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	var recency, frequency, monetary decimal.Decimal
	for _, r := range rows {
		recency = recency.Add(decimal.NewFromInt(int64(r.Recency)))
		frequency = frequency.Add(decimal.NewFromInt(int64(r.Frequency)))
		monetary = monetary.Add(r.Monetary)
	}
	n := decimal.NewFromInt(int64(len(rows)))
	avgRecency := recency.Div(n)
	avgFrequency := frequency.Div(n)
	avgMonetary := monetary.Div(n)

	return Summary{
		Customers:        len(rows),
		AverageRecency:   &avgRecency,
		AverageFrequency: &avgFrequency,
		AverageMonetary:  &avgMonetary,
	}
}
