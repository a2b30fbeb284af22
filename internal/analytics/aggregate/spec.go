package aggregate

import (
	"fmt"

	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
)

// Func is a reduction applied to every group.
type Func string

const (
	FuncDistinctCount Func = "distinct_count"
	FuncSum           Func = "sum"
	FuncMean          Func = "mean"
)

// Reducer pairs a reduction with the column it reads.
type Reducer struct {
	Func   Func
	Column dataset.Column
}

// DistinctCount counts the distinct non-empty values of a key column per group.
func DistinctCount(col dataset.Column) Reducer {
	return Reducer{Func: FuncDistinctCount, Column: col}
}

// Sum adds up a numeric column per group.
func Sum(col dataset.Column) Reducer {
	return Reducer{Func: FuncSum, Column: col}
}

// Mean averages a numeric column per group, ignoring records where it is absent.
func Mean(col dataset.Column) Reducer {
	return Reducer{Func: FuncMean, Column: col}
}

// SortOrder orders groups by their reduced value.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Spec describes one group-by/reduce/sort/top-N view.
type Spec struct {
	Name    string
	GroupBy []dataset.Column
	Reduce  Reducer
	Order   SortOrder
	// Limit caps the number of rows; zero or negative keeps every group.
	Limit int
}

// Validate checks that the spec can run against the order dataset.
func (s Spec) Validate() error {
	if len(s.GroupBy) == 0 || len(s.GroupBy) > 2 {
		return invalid(s, "group by one or two columns")
	}
	for _, col := range s.GroupBy {
		if !col.IsKey() {
			return invalid(s, fmt.Sprintf("column %q cannot be grouped", col))
		}
	}
	switch s.Reduce.Func {
	case FuncDistinctCount:
		if !s.Reduce.Column.IsKey() {
			return invalid(s, fmt.Sprintf("column %q cannot be distinct-counted", s.Reduce.Column))
		}
	case FuncSum, FuncMean:
		if !s.Reduce.Column.IsMeasure() {
			return invalid(s, fmt.Sprintf("column %q is not numeric", s.Reduce.Column))
		}
	default:
		return invalid(s, fmt.Sprintf("unknown reduction %q", s.Reduce.Func))
	}
	if s.Order != Ascending && s.Order != Descending {
		return invalid(s, fmt.Sprintf("unknown sort order %q", s.Order))
	}
	return nil
}

func invalid(s Spec, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]any{"view": s.Name})
}
