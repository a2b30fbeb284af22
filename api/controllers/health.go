package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/commerce-dashboard/api/responses"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/db"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/angelmondragon/commerce-dashboard/pkg/instance"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

const (
	envHeader      = "X-Dashboard-Env"
	instanceHeader = "X-Dashboard-Instance"
)

const readyPingTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setHealthHeaders(w, cfg)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the dataset is in memory. dbP is optional and
// only set when the dataset came from a database table.
func HealthReady(cfg *config.Config, logg *logger.Logger, data *dataset.Dataset, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setHealthHeaders(w, cfg)
		ctx := r.Context()

		if data == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dataset not loaded"))
			return
		}

		if dbP != nil {
			pingCtx, cancel := context.WithTimeout(ctx, readyPingTimeout)
			defer cancel()
			if err := dbP.Ping(pingCtx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable").
					WithDetails(map[string]any{"dependency": "database"}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"status":  "ready",
			"source":  cfg.Dataset.Source,
			"records": data.Len(),
		})
	}
}

func setHealthHeaders(w http.ResponseWriter, cfg *config.Config) {
	w.Header().Set(envHeader, cfg.App.Env)
	w.Header().Set(instanceHeader, instance.GetID())
}
