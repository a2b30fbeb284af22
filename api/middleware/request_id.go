package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/commerce-dashboard/api/responses"
	"github.com/angelmondragon/commerce-dashboard/api/validators"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

const maxRequestIDLen = 64

// RequestID keeps a caller supplied X-Request-Id, cleaned and capped, or mints
// a UUID. The id is echoed on the response and attached to the log context.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := validators.SanitizeString(r.Header.Get(responses.RequestIDHeader), maxRequestIDLen)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(responses.RequestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
