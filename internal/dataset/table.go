package dataset

import (
	"context"
	"strings"

	"github.com/angelmondragon/commerce-dashboard/pkg/db"
	"github.com/angelmondragon/commerce-dashboard/pkg/db/models"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoadTable reads the dataset from a database table holding the same columns
// as the flat file. The same schema and row rules as LoadCSV apply.
func LoadTable(ctx context.Context, conn *gorm.DB, table string) (*Dataset, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database connection required")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table name required")
	}

	header, found, err := db.TableColumns(ctx, conn, table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect dataset table")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeSchema, "dataset table not found").
			WithDetails(map[string]any{"table": table})
	}
	if _, err := indexColumns(header); err != nil {
		return nil, err
	}

	conn = conn.WithContext(ctx)

	rows, err := conn.Table(table).Select(columnNames(RequiredColumns)).Rows()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "select dataset rows")
	}
	defer rows.Close()

	var (
		records []OrderRecord
		quality Quality
	)
	for rows.Next() {
		var row models.OrderRow
		if err := conn.ScanRows(rows, &row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan dataset row")
		}
		quality.RowsRead++
		rec, ok := fromRow(row, &quality)
		if !ok {
			quality.RowsRejected++
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "iterate dataset rows")
	}

	return New(records, quality), nil
}

func fromRow(row models.OrderRow, quality *Quality) (OrderRecord, bool) {
	rec := OrderRecord{
		OrderID:             deref(row.OrderID),
		ProductID:           deref(row.ProductID),
		ProductCategoryName: deref(row.ProductCategoryName),
		CustomerID:          deref(row.CustomerID),
		CustomerState:       deref(row.CustomerState),
	}
	if rec.OrderID == "" {
		return OrderRecord{}, false
	}
	switch {
	case !row.Price.Valid:
		rec.Price = decimal.Zero
		quality.MissingPrice++
	case row.Price.Decimal.IsNegative():
		return OrderRecord{}, false
	default:
		rec.Price = row.Price.Decimal
	}

	if row.OrderApprovedAt != nil && !row.OrderApprovedAt.IsZero() {
		ts := row.OrderApprovedAt.UTC()
		rec.OrderApprovedAt = &ts
	} else {
		quality.MissingApprovedAt++
	}
	if row.ReviewScore != nil {
		score := int(*row.ReviewScore)
		rec.ReviewScore = &score
	}

	observe(rec, quality)
	return rec, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
