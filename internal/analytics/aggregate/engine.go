package aggregate

import (
	"sort"
	"strings"

	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/shopspring/decimal"
)

// Row is one reduced group. Keys follow the order of Spec.GroupBy.
type Row struct {
	Keys  []string `json:"keys"`
	Value float64  `json:"value"`
}

// Label joins the group keys for single-axis charts.
func (r Row) Label() string {
	return strings.Join(r.Keys, " / ")
}

// groupID identifies a group. Specs group by at most two columns.
type groupID [2]string

type group struct {
	keys     []string
	distinct map[string]struct{}
	sum      decimal.Decimal
	n        int64
}

// Aggregate groups records by spec.GroupBy, reduces each group, sorts by the
// reduced value and truncates to spec.Limit. Records with an empty group key are
// skipped. Mean ignores absent values and drops groups that have none, so a
// group never reports a fabricated zero. Ties keep first-seen group order.
func Aggregate(records []dataset.OrderRecord, spec Spec) ([]Row, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	index := make(map[groupID]*group)
	var order []*group
	for _, rec := range records {
		keys, ok := groupKeys(rec, spec.GroupBy)
		if !ok {
			continue
		}
		var id groupID
		copy(id[:], keys)
		g, seen := index[id]
		if !seen {
			g = &group{keys: keys}
			if spec.Reduce.Func == FuncDistinctCount {
				g.distinct = make(map[string]struct{})
			}
			index[id] = g
			order = append(order, g)
		}
		accumulate(g, rec, spec.Reduce)
	}

	rows := make([]Row, 0, len(order))
	for _, g := range order {
		value, ok := reduce(g, spec.Reduce.Func)
		if !ok {
			continue
		}
		rows = append(rows, Row{Keys: g.keys, Value: value})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if spec.Order == Descending {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Value < rows[j].Value
	})

	if spec.Limit > 0 && len(rows) > spec.Limit {
		rows = rows[:spec.Limit]
	}
	return rows, nil
}

func groupKeys(rec dataset.OrderRecord, cols []dataset.Column) ([]string, bool) {
	keys := make([]string, len(cols))
	for i, col := range cols {
		v, ok := rec.Key(col)
		if !ok {
			return nil, false
		}
		keys[i] = v
	}
	return keys, true
}

func accumulate(g *group, rec dataset.OrderRecord, r Reducer) {
	switch r.Func {
	case FuncDistinctCount:
		if v, ok := rec.Key(r.Column); ok {
			g.distinct[v] = struct{}{}
		}
	case FuncSum, FuncMean:
		if v, ok := rec.Measure(r.Column); ok {
			g.sum = g.sum.Add(v)
			g.n++
		}
	}
}

func reduce(g *group, fn Func) (float64, bool) {
	switch fn {
	case FuncDistinctCount:
		return float64(len(g.distinct)), true
	case FuncSum:
		return g.sum.InexactFloat64(), true
	case FuncMean:
		if g.n == 0 {
			return 0, false
		}
		return g.sum.Div(decimal.NewFromInt(g.n)).InexactFloat64(), true
	}
	return 0, false
}
