package dataset

import (
	"context"

	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/db"
	pkgerrors "github.com/angelmondragon/commerce-dashboard/pkg/errors"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

// Open loads the dataset from the configured source. For table sources the
// returned client stays open for readiness checks and must be closed by the
// caller; it is nil for csv.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Dataset, *db.Client, error) {
	if logg != nil {
		ctx = logg.WithDataset(ctx, cfg.Dataset.Source, location(cfg))
		logg.Info(ctx, "dataset.opening")
	}
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		ds, err := LoadCSVFile(ctx, cfg.Dataset.Path)
		if err != nil {
			return nil, nil, err
		}
		return ds, nil, nil
	case config.SourcePostgres, config.SourceSQLite:
		client, err := db.New(ctx, cfg.Dataset.Source, cfg.DB, logg)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "connect dataset database").
				WithDetails(map[string]any{"source": cfg.Dataset.Source})
		}
		ds, err := LoadTable(ctx, client.DB(), cfg.Dataset.Table)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return ds, client, nil
	default:
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported dataset source").
			WithDetails(map[string]any{"source": cfg.Dataset.Source})
	}
}

func location(cfg *config.Config) string {
	if cfg.Dataset.Source == config.SourceCSV {
		return cfg.Dataset.Path
	}
	return cfg.Dataset.Table
}
