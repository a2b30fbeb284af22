package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRow mirrors one line of the pre-joined orders table. The table name is
// configurable, so callers select it with db.Table(name).
type OrderRow struct {
	OrderID             *string             `gorm:"column:order_id"`
	ProductID           *string             `gorm:"column:product_id"`
	ProductCategoryName *string             `gorm:"column:product_category_name"`
	CustomerID          *string             `gorm:"column:customer_id"`
	CustomerState       *string             `gorm:"column:customer_state"`
	OrderApprovedAt     *time.Time          `gorm:"column:order_approved_at"`
	Price               decimal.NullDecimal `gorm:"column:price;type:numeric"`
	ReviewScore         *int64              `gorm:"column:review_score"`
}
