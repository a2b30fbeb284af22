package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/commerce-dashboard/pkg/config"
	"github.com/angelmondragon/commerce-dashboard/pkg/logger"
)

// Client is the read-only connection behind a table-backed dataset.
type Client struct {
	conn   *gorm.DB
	source string
}

// Pinger exposes the readiness check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New opens a pooled connection for source (config.SourcePostgres or
// config.SourceSQLite).
func New(ctx context.Context, source string, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	dialector, err := dialectorFor(source, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.New(log.New(io.Discard, "", 0), gormlogger.Config{LogLevel: gormlogger.Silent}),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", source, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	if logg != nil {
		logg.Info(logg.WithField(ctx, "db_engine", source), "db.connected")
	}
	return &Client{conn: conn, source: source}, nil
}

func dialectorFor(source string, cfg config.DBConfig) (gorm.Dialector, error) {
	switch source {
	case config.SourcePostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database DSN is required")
		}
		return postgres.New(postgres.Config{DSN: cfg.DSN, PreferSimpleProtocol: true}), nil
	case config.SourceSQLite:
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database source %q", source)
	}
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// TableColumns lists the column names of table. found is false when the table
// does not exist.
func TableColumns(ctx context.Context, conn *gorm.DB, table string) (columns []string, found bool, err error) {
	migrator := conn.WithContext(ctx).Migrator()
	if !migrator.HasTable(table) {
		return nil, false, nil
	}
	columnTypes, err := migrator.ColumnTypes(table)
	if err != nil {
		return nil, true, fmt.Errorf("inspecting table %s: %w", table, err)
	}
	columns = make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, true, nil
}

func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Source reports the engine this client was opened for.
func (c *Client) Source() string {
	return c.source
}

func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
