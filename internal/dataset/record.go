package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column names a field of the pre-joined order dataset.
type Column string

const (
	ColumnOrderID             Column = "order_id"
	ColumnProductID           Column = "product_id"
	ColumnProductCategoryName Column = "product_category_name"
	ColumnCustomerID          Column = "customer_id"
	ColumnCustomerState       Column = "customer_state"
	ColumnOrderApprovedAt     Column = "order_approved_at"
	ColumnPrice               Column = "price"
	ColumnReviewScore         Column = "review_score"
)

// RequiredColumns lists every column the dashboard reads.
var RequiredColumns = []Column{
	ColumnOrderID,
	ColumnProductID,
	ColumnProductCategoryName,
	ColumnCustomerID,
	ColumnCustomerState,
	ColumnOrderApprovedAt,
	ColumnPrice,
	ColumnReviewScore,
}

// String implements fmt.Stringer.
func (c Column) String() string {
	return string(c)
}

// IsKey reports whether the column can be used as a grouping key or distinct-count target.
func (c Column) IsKey() bool {
	switch c {
	case ColumnOrderID, ColumnProductID, ColumnProductCategoryName, ColumnCustomerID, ColumnCustomerState:
		return true
	}
	return false
}

// IsMeasure reports whether the column holds a number that can be summed or averaged.
func (c Column) IsMeasure() bool {
	return c == ColumnPrice || c == ColumnReviewScore
}

// OrderRecord is one (order, product) line item.
type OrderRecord struct {
	OrderID             string
	ProductID           string
	ProductCategoryName string
	CustomerID          string
	CustomerState       string
	// OrderApprovedAt is nil for unapproved orders and unparseable timestamps.
	OrderApprovedAt *time.Time
	Price           decimal.Decimal
	// ReviewScore is nil when the order line was never reviewed.
	ReviewScore *int
}

// Key returns the string value of a key column. Empty values report false.
func (r OrderRecord) Key(col Column) (string, bool) {
	var v string
	switch col {
	case ColumnOrderID:
		v = r.OrderID
	case ColumnProductID:
		v = r.ProductID
	case ColumnProductCategoryName:
		v = r.ProductCategoryName
	case ColumnCustomerID:
		v = r.CustomerID
	case ColumnCustomerState:
		v = r.CustomerState
	default:
		return "", false
	}
	return v, v != ""
}

// Measure returns the numeric value of a measure column. Absent values report false.
func (r OrderRecord) Measure(col Column) (decimal.Decimal, bool) {
	switch col {
	case ColumnPrice:
		return r.Price, true
	case ColumnReviewScore:
		if r.ReviewScore == nil {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(*r.ReviewScore)), true
	}
	return decimal.Zero, false
}
