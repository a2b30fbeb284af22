package analytics

import (
	"net/http"

	"github.com/angelmondragon/commerce-dashboard/api/responses"
	"github.com/angelmondragon/commerce-dashboard/api/validators"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
	"github.com/angelmondragon/commerce-dashboard/pkg/pagination"
)

// Dashboard returns every dashboard view for the requested range.
func Dashboard(service analytics.Service, defaults DateDefaults, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := resolveDashboardRange(r, defaults)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.Query(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// rfmPage is the RFM block with the customer table cut to one page.
type rfmPage struct {
	types.RFMBlock
	Page pagination.Page `json:"page"`
}

// RFM returns only the customer segmentation block for the requested range.
// The customer table is paged with ?limit= and ?cursor=; the leaderboards and
// summary cards always cover every customer.
func RFM(service analytics.Service, defaults DateDefaults, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := resolveDashboardRange(r, defaults)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}
		if _, err := pagination.ParseCursor(params.Cursor); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		result, err := service.Query(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		block := result.RFM
		customers, page, err := pagination.Slice(block.Customers, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		block.Customers = customers

		responses.WriteSuccess(w, rfmPage{RFMBlock: block, Page: page})
	}
}
