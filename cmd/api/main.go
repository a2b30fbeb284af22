package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/commerce-dashboard/api"
	"github.com/angelmondragon/commerce-dashboard/api/routes"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/currency"
	"github.com/angelmondragon/commerce-dashboard/pkg/db"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/angelmondragon/commerce-dashboard/pkg/instance"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
	"github.com/angelmondragon/commerce-dashboard/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"source":   cfg.Dataset.Source,
		"instance": instance.GetID(),
	})

	data, dbClient, err := dataset.Open(ctx, cfg, logg)
	if err != nil {
		dump := pkgerrors.Dump(err)
		fields := dump.Fields()
		fields["error_details"] = dump.Details
		logg.Error(logg.WithFields(ctx, fields), "failed to load dataset", err)
		os.Exit(1)
	}
	var dbP db.Pinger
	if dbClient != nil {
		dbP = dbClient
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}()
	}
	analytics.LogDatasetQuality(ctx, logg, data)

	money, err := currency.NewFormatter(cfg.Dataset.Currency, cfg.Dataset.Locale)
	if err != nil {
		logg.Error(ctx, "invalid currency settings", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	analyticsService, err := analytics.NewService(data, money, logg, metrics.NewDashboardMetrics(reg))
	if err != nil {
		logg.Error(ctx, "failed to create analytics service", err)
		os.Exit(1)
	}

	handler, err := routes.NewRouter(cfg, logg, data, dbP, analyticsService, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err != nil {
		logg.Error(ctx, "failed to build router", err)
		os.Exit(1)
	}

	server := api.NewServer(cfg, handler)
	ctx = logg.WithField(ctx, "addr", server.Addr)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}
