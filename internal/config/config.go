package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/2beens/gymtracker/internal/gymstats/progression"
)

const (
	AutosaveBackendRedis  = "redis"
	AutosaveBackendSQLite = "sqlite"
)

type Config struct {
	Environment string   `toml:"environment"`
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	MetricsHost string   `toml:"metrics_host"`
	MetricsPort int      `toml:"metrics_port"`
	CorsOrigins []string `toml:"cors_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost           string `toml:"postgres_host"`
	PostgresPort           string `toml:"postgres_port"`
	PostgresDBName         string `toml:"postgres_db_name"`
	PostgresUser           string `toml:"postgres_user"`
	MigrationsPath         string `toml:"migrations_path"`
	RunMigrationsAtStartup bool   `toml:"run_migrations_at_startup"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// workout sessions
	AutosaveBackend    string `toml:"autosave_backend"`
	AutosaveSQLitePath string `toml:"autosave_sqlite_path"`
	TemplatesDir       string `toml:"templates_dir"`
	DefaultRestSeconds int    `toml:"default_rest_seconds"`
	PastSessionsLimit  int    `toml:"past_sessions_limit"`
	CatalogCacheSizeMB int    `toml:"catalog_cache_size_mb"`
	CatalogCacheTTL    string `toml:"catalog_cache_ttl"`
	NotifyWebhookURL   string `toml:"notify_webhook_url"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
	HousekeepingSpec   string `toml:"housekeeping_spec"`
	UnloadIdleAfter    string `toml:"unload_idle_after"`
	MCPEnabled         bool   `toml:"mcp_enabled"`

	Progression progression.Rules `toml:"progression"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	cfg.applyDefaults(env)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.MetricsHost == "" {
		c.MetricsHost = "localhost"
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.PostgresHost == "" {
		c.PostgresHost = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "gymtracker"
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = "./internal/db/migrations"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.AutosaveBackend == "" {
		c.AutosaveBackend = AutosaveBackendRedis
	}
	if c.AutosaveSQLitePath == "" {
		c.AutosaveSQLitePath = "./autosave.db"
	}
	if c.DefaultRestSeconds == 0 {
		c.DefaultRestSeconds = 60
	}
	if c.PastSessionsLimit == 0 {
		c.PastSessionsLimit = 10
	}
	if c.CatalogCacheSizeMB == 0 {
		c.CatalogCacheSizeMB = 10
	}
	if c.CatalogCacheTTL == "" {
		c.CatalogCacheTTL = "30m"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 120
	}
	if c.HousekeepingSpec == "" {
		c.HousekeepingSpec = "@every 10m"
	}
	if c.UnloadIdleAfter == "" {
		c.UnloadIdleAfter = "3h"
	}
}

func (c *Config) Validate() error {
	var errs error
	if c.Port < 0 || c.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("metrics port out of range: %d", c.MetricsPort))
	}
	switch c.AutosaveBackend {
	case AutosaveBackendRedis, AutosaveBackendSQLite:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown autosave backend: %s", c.AutosaveBackend))
	}
	if c.DefaultRestSeconds < 0 {
		errs = multierr.Append(errs, fmt.Errorf("default rest seconds must not be negative: %d", c.DefaultRestSeconds))
	}
	if c.PastSessionsLimit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("past sessions limit must not be negative: %d", c.PastSessionsLimit))
	}
	if _, err := time.ParseDuration(c.CatalogCacheTTL); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("catalog cache ttl: %w", err))
	}
	if d, err := time.ParseDuration(c.UnloadIdleAfter); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("unload idle after: %w", err))
	} else if d <= 0 {
		errs = multierr.Append(errs, errors.New("unload idle after must be positive"))
	}
	if err := progression.Validate(c.Progression); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("progression: %w", err))
	}
	return errs
}

// CatalogCacheTTLDuration returns the parsed catalog cache TTL. Only valid after Load.
func (c *Config) CatalogCacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CatalogCacheTTL)
	return d
}

// UnloadIdleAfterDuration returns the parsed idle unload duration. Only valid after Load.
func (c *Config) UnloadIdleAfterDuration() time.Duration {
	d, _ := time.ParseDuration(c.UnloadIdleAfter)
	return d
}
