package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/commerce-dashboard/api/responses"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

// Recoverer turns a panic in a dashboard handler into a logged 500 with the
// usual error envelope. http.ErrAbortHandler is re-raised for net/http.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{"panic": fmt.Sprint(rec), "path": r.URL.Path})
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "handler panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
