package dataset

import (
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"go.uber.org/multierr"
)

// columnIndex maps required columns to their position in a source header.
type columnIndex map[Column]int

// indexColumns matches a header against RequiredColumns. Extra columns are
// ignored; every missing column is reported in a single schema error.
func indexColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	idx := make(columnIndex, len(RequiredColumns))
	var missing []string
	var err error
	for _, col := range RequiredColumns {
		pos, ok := positions[string(col)]
		if !ok {
			missing = append(missing, string(col))
			err = multierr.Append(err, fmt.Errorf("missing column %q", col))
			continue
		}
		idx[col] = pos
	}
	if err != nil {
		return nil, schemaError(err, missing)
	}
	return idx, nil
}

func schemaError(cause error, missing []string) error {
	return pkgerrors.Wrap(pkgerrors.CodeSchema, cause, "dataset is missing required columns").
		WithDetails(map[string]any{"missing_columns": missing})
}
