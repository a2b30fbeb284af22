package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/commerce-dashboard/api/controllers"
	analyticscontrollers "github.com/angelmondragon/commerce-dashboard/api/controllers/analytics"
	"github.com/angelmondragon/commerce-dashboard/api/middleware"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/db"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

// NewRouter mounts the dashboard API. dbP may be nil for the csv source and
// metricsHandler may be nil when metrics are disabled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	data *dataset.Dataset,
	dbP db.Pinger,
	analyticsService analytics.Service,
	metricsHandler http.Handler,
) (http.Handler, error) {
	start, end, err := cfg.Dataset.DefaultRange()
	if err != nil {
		return nil, err
	}
	defaults := analyticscontrollers.DateDefaults{Start: start, End: end}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, data, dbP))
	})

	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/", analyticscontrollers.Dashboard(analyticsService, defaults, logg))
		r.Get("/rfm", analyticscontrollers.RFM(analyticsService, defaults, logg))
	})

	if cfg.Metrics.Enabled && metricsHandler != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, metricsHandler)
	}

	return r, nil
}
