package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
)

// DateRangeQuery is the ?start=&end= pair accepted by the dashboard routes.
type DateRangeQuery struct {
	Start string `query:"start" validate:"omitempty,max=10,datetime=2006-01-02"`
	End   string `query:"end" validate:"omitempty,max=10,datetime=2006-01-02"`
}

// ParseDateRangeQuery validates start and end. Absent values fall back to the
// supplied defaults. An inverted range is returned as-is; callers decide what
// it means.
func ParseDateRangeQuery(r *http.Request, defaultStart, defaultEnd time.Time) (time.Time, time.Time, error) {
	values := r.URL.Query()
	q := DateRangeQuery{
		Start: SanitizeString(values.Get("start"), 32),
		End:   SanitizeString(values.Get("end"), 32),
	}
	if err := Struct(q); err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := dateOrDefault(q.Start, defaultStart, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateOrDefault(q.End, defaultEnd, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func dateOrDefault(raw string, fallback time.Time, field string) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.Parse(config.DateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails(map[string]any{"field": field})
	}
	return parsed, nil
}

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}
