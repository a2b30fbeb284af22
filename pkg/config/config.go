package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "DASHBOARD"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "DASHBOARD_APP_ENV"
	EnvPort           = "DASHBOARD_APP_PORT"
	EnvLogLevel       = "DASHBOARD_LOG_LEVEL"
	EnvLogFormat      = "DASHBOARD_LOG_FORMAT"
	EnvDatasetSource  = "DASHBOARD_DATASET_SOURCE"
	EnvDatasetPath    = "DASHBOARD_DATASET_PATH"
	EnvDatasetTable   = "DASHBOARD_DATASET_TABLE"
	EnvDefaultStart   = "DASHBOARD_DEFAULT_START"
	EnvDefaultEnd     = "DASHBOARD_DEFAULT_END"
	EnvCurrency       = "DASHBOARD_CURRENCY"
	EnvLocale         = "DASHBOARD_LOCALE"
	EnvDBDSN          = "DASHBOARD_DB_DSN"
	EnvDBHost         = "DASHBOARD_DB_HOST"
	EnvDBUser         = "DASHBOARD_DB_USER"
	EnvDBName         = "DASHBOARD_DB_NAME"
	EnvCORSOrigins    = "DASHBOARD_CORS_ORIGINS"
	EnvMetricsEnabled = "DASHBOARD_METRICS_ENABLED"

	DateLayout = "2006-01-02"
)

// Dataset sources understood by the loader.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App     AppConfig
	Dataset DatasetConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Metrics MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Dataset.validate(); err != nil {
		return nil, err
	}
	if cfg.Dataset.Source == SourcePostgres {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DASHBOARD_APP_ENV" default:"dev"`
	Port         string `envconfig:"DASHBOARD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DASHBOARD_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"DASHBOARD_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"DASHBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DatasetConfig describes where order records come from and how the dashboard
// presents them by default.
type DatasetConfig struct {
	Source       string `envconfig:"DASHBOARD_DATASET_SOURCE" default:"csv"`
	Path         string `envconfig:"DASHBOARD_DATASET_PATH" default:"final_df.csv"`
	Table        string `envconfig:"DASHBOARD_DATASET_TABLE" default:"final_orders"`
	DefaultStart string `envconfig:"DASHBOARD_DEFAULT_START" default:"2016-01-01"`
	DefaultEnd   string `envconfig:"DASHBOARD_DEFAULT_END" default:"2018-12-31"`
	Currency     string `envconfig:"DASHBOARD_CURRENCY" default:"AUD"`
	Locale       string `envconfig:"DASHBOARD_LOCALE" default:"en_AU"`
}

// DefaultRange parses the configured default bounds.
func (d DatasetConfig) DefaultRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(d.DefaultStart))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid %s: %w", EnvDefaultStart, err)
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(d.DefaultEnd))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid %s: %w", EnvDefaultEnd, err)
	}
	return start, end, nil
}

func (d *DatasetConfig) validate() error {
	d.Source = strings.ToLower(strings.TrimSpace(d.Source))
	switch d.Source {
	case SourceCSV:
		if strings.TrimSpace(d.Path) == "" {
			return fmt.Errorf("%s is required for the csv source", EnvDatasetPath)
		}
	case SourcePostgres, SourceSQLite:
		if strings.TrimSpace(d.Table) == "" {
			return fmt.Errorf("%s is required for the %s source", EnvDatasetTable, d.Source)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvDatasetSource, d.Source)
	}
	if _, _, err := d.DefaultRange(); err != nil {
		return err
	}
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"DASHBOARD_DB_DSN"`
	// SQLitePath is used when the dataset source is sqlite.
	SQLitePath string `envconfig:"DASHBOARD_SQLITE_PATH" default:"dashboard.db"`

	LegacyHost     string `envconfig:"DASHBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"DASHBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DASHBOARD_DB_USER"`
	LegacyPassword string `envconfig:"DASHBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"DASHBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"DASHBOARD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DASHBOARD_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"DASHBOARD_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DASHBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DASHBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type HTTPConfig struct {
	CORSOrigins  []string      `envconfig:"DASHBOARD_CORS_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout  time.Duration `envconfig:"DASHBOARD_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"DASHBOARD_HTTP_WRITE_TIMEOUT" default:"30s"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"DASHBOARD_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"DASHBOARD_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
