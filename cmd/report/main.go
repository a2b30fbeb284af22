package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/commerce-dashboard/internal/analytics"
	"github.com/angelmondragon/commerce-dashboard/internal/analytics/types"
	"github.com/angelmondragon/commerce-dashboard/internal/dataset"
	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/currency"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

type options struct {
	start  string
	end    string
	pretty bool
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "report", Output: os.Stderr})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "report",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
		Output:      os.Stderr,
	})

	opts, err := parseFlags(os.Args[1:], cfg.Dataset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, logg, opts, os.Stdout)
	stop()
	if err != nil {
		dump := pkgerrors.Dump(err)
		fields := dump.Fields()
		fields["details"] = dump.Details
		logg.Error(logg.WithFields(ctx, fields), "report failed", err)
		os.Exit(pkgerrors.ExitCode(err))
	}
}

func parseFlags(args []string, defaults config.DatasetConfig) (options, error) {
	var opts options
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.StringVar(&opts.start, "start", defaults.DefaultStart, "first calendar day (YYYY-MM-DD)")
	fs.StringVar(&opts.end, "end", defaults.DefaultEnd, "last calendar day (YYYY-MM-DD)")
	fs.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func (o options) request() (types.DashboardQueryRequest, error) {
	start, err := time.Parse(config.DateLayout, o.start)
	if err != nil {
		return types.DashboardQueryRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid -start %q", o.start))
	}
	end, err := time.Parse(config.DateLayout, o.end)
	if err != nil {
		return types.DashboardQueryRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid -end %q", o.end))
	}
	return types.DashboardQueryRequest{Start: start, End: end}, nil
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options, out io.Writer) error {
	req, err := opts.request()
	if err != nil {
		return err
	}

	data, dbClient, err := dataset.Open(ctx, cfg, logg)
	if err != nil {
		return err
	}
	if dbClient != nil {
		defer dbClient.Close()
	}
	analytics.LogDatasetQuality(ctx, logg, data)

	money, err := currency.NewFormatter(cfg.Dataset.Currency, cfg.Dataset.Locale)
	if err != nil {
		return err
	}
	svc, err := analytics.NewService(data, money, logg, nil)
	if err != nil {
		return err
	}

	resp, err := svc.Query(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}
