package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`
	// origins of the dashboard frontends, checked by the CORS middleware
	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	Storage         string `toml:"storage"`
	RecordsFilePath string `toml:"records_file_path"`
	PostgresHost    string `toml:"postgres_host"`
	PostgresPort    string `toml:"postgres_port"`
	PostgresDBName  string `toml:"postgres_db_name"`

	// redis is only used for ingestion rate limiting, leave redis_host empty to disable it
	RedisHost             string `toml:"redis_host"`
	RedisPort             string `toml:"redis_port"`
	IngestRateLimitPerMin int    `toml:"ingest_rate_limit_per_min"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// dashboard defaults, used when the request does not select a window / metric
	DefaultWindow string `toml:"default_window"`
	DefaultMetric string `toml:"default_metric"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found", env)
	}
	cfg.Environment = strings.ToLower(env)

	return cfg, nil
}

// Load reads the TOML config file and returns the config for the given environment,
// with defaults applied to the unset values.
func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.Storage == "" {
		c.Storage = StorageFile
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.IngestRateLimitPerMin == 0 {
		c.IngestRateLimitPerMin = 60
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.DefaultWindow == "" {
		c.DefaultWindow = "1m"
	}
	if c.DefaultMetric == "" {
		c.DefaultMetric = "steps"
	}
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.RecordsFilePath == "" {
			return errors.New("records_file_path must be set for file storage")
		}
	case StoragePostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return errors.New("postgres_host and postgres_db_name must be set for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage [%s]", c.Storage)
	}

	if c.IngestRateLimitPerMin < 0 {
		return errors.New("ingest_rate_limit_per_min cannot be negative")
	}

	return nil
}
