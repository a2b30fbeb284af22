package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/shopspring/decimal"
)

const ctxCheckEvery = 4096

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open dataset file").
			WithDetails(map[string]any{"path": path})
	}
	defer f.Close()
	return LoadCSV(ctx, f)
}

// LoadCSV reads a header row followed by order lines. A header lacking any
// required column fails with a schema error. Rows with a blank order id, a
// truncated price cell or a malformed/negative price are rejected and tallied.
// A blank price keeps the row at zero revenue. Blank or unparseable approval
// timestamps and review scores are kept as absent values.
func LoadCSV(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, schemaError(errors.New("empty file"), columnNames(RequiredColumns))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read dataset header")
	}
	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		records []OrderRecord
		quality Quality
	)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				quality.RowsRead++
				quality.RowsRejected++
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read dataset line %d", line))
		}
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		quality.RowsRead++
		rec, ok := parseRow(row, idx, &quality)
		if !ok {
			quality.RowsRejected++
			continue
		}
		records = append(records, rec)
	}

	return New(records, quality), nil
}

func parseRow(row []string, idx columnIndex, quality *Quality) (OrderRecord, bool) {
	field := func(col Column) string {
		pos := idx[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	rec := OrderRecord{
		OrderID:             field(ColumnOrderID),
		ProductID:           field(ColumnProductID),
		ProductCategoryName: field(ColumnProductCategoryName),
		CustomerID:          field(ColumnCustomerID),
		CustomerState:       field(ColumnCustomerState),
	}
	if rec.OrderID == "" {
		return OrderRecord{}, false
	}

	if idx[ColumnPrice] >= len(row) {
		return OrderRecord{}, false
	}
	rawPrice := field(ColumnPrice)
	price, ok := parsePrice(rawPrice)
	if !ok {
		return OrderRecord{}, false
	}
	rec.Price = price
	if rawPrice == "" {
		quality.MissingPrice++
	}

	rawApproved := field(ColumnOrderApprovedAt)
	if ts, ok := ParseApprovedAt(rawApproved); ok {
		rec.OrderApprovedAt = &ts
	} else if rawApproved == "" {
		quality.MissingApprovedAt++
	} else {
		quality.InvalidApprovedAt++
	}

	rec.ReviewScore = parseReviewScore(field(ColumnReviewScore))
	observe(rec, quality)
	return rec, true
}

// observe tallies the gaps shared by every source.
func observe(rec OrderRecord, quality *Quality) {
	if rec.ReviewScore == nil {
		quality.MissingReviewScore++
	}
	if rec.ProductCategoryName == "" {
		quality.MissingCategory++
	}
}

// parsePrice maps a blank price to zero so the line still counts as a purchase.
func parsePrice(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}

// parseReviewScore accepts "4" as well as the "4.0" form float-typed exports produce.
func parseReviewScore(raw string) *int {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	score := int(f)
	return &score
}

func columnNames(cols []Column) []string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, string(c))
	}
	return names
}
