package analytics

import (
	"net/http"
	"time"

	"github.com/angelmondragon/commerce-dashboard/api/validators"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
)

// DateDefaults is the range used when a request omits start or end.
type DateDefaults struct {
	Start time.Time
	End   time.Time
}

func resolveDashboardRange(r *http.Request, defaults DateDefaults) (types.DashboardQueryRequest, error) {
	start, end, err := validators.ParseDateRangeQuery(r, defaults.Start, defaults.End)
	if err != nil {
		return types.DashboardQueryRequest{}, err
	}
	return types.DashboardQueryRequest{Start: start, End: end}, nil
}
