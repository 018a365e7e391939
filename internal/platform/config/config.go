// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Market data sources.
const (
	SourceYahoo      = "yahoo"
	SourceTwelveData = "twelvedata"
	SourceStore      = "store"
)

// Config is the full application configuration.
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	HTTP struct {
		Port            string        `envconfig:"PORT" default:"8080"`
		ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
		WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	Market struct {
		Source            string        `envconfig:"MARKET_SOURCE" default:"yahoo"`
		Timeout           time.Duration `envconfig:"MARKET_TIMEOUT" default:"10s"`
		CacheTTL          time.Duration `envconfig:"MARKET_CACHE_TTL" default:"1h"`
		RateLimit         int           `envconfig:"MARKET_RATE_LIMIT" default:"8"`
		RateWindow        time.Duration `envconfig:"MARKET_RATE_WINDOW" default:"1m"`
		YahooBaseURL      string        `envconfig:"YAHOO_BASE_URL"`
		TwelveDataAPIKey  string        `envconfig:"TWELVE_DATA_API_KEY"`
		TwelveDataBaseURL string        `envconfig:"TWELVE_DATA_BASE_URL"`
	}

	DB struct {
		Driver     string `envconfig:"DB_DRIVER" default:"sqlite"`
		DSN        string `envconfig:"DB_DSN"`
		Host       string `envconfig:"DB_HOST" default:"localhost"`
		Port       string `envconfig:"DB_PORT" default:"5432"`
		User       string `envconfig:"DB_USER"`
		Password   string `envconfig:"DB_PASSWORD"`
		Name       string `envconfig:"DB_NAME" default:"tradeiq"`
		SSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"tradeiq.db"`
		Migrate    bool   `envconfig:"RUN_MIGRATIONS" default:"true"`
	}

	Redis struct {
		Host     string `envconfig:"REDIS_HOST"`
		Port     string `envconfig:"REDIS_PORT" default:"6379"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	JWT struct {
		Secret string `envconfig:"JWT_SECRET"`
		Issuer string `envconfig:"JWT_ISSUER" default:"tradeiq"`
	}

	Ingest struct {
		Cron     string `envconfig:"INGEST_CRON"`
		Hour     int    `envconfig:"INGEST_HOUR" default:"8"`
		TimeZone string `envconfig:"INGEST_TZ" default:"UTC"`
	}

	WatchlistFile string `envconfig:"WATCHLIST_FILE" default:"configs/watchlist.yaml"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug(".env not found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.Market.Source = strings.ToLower(strings.TrimSpace(cfg.Market.Source))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Market.Source {
	case SourceYahoo, SourceStore:
	case SourceTwelveData:
		if c.Market.TwelveDataAPIKey == "" {
			errs = append(errs, errors.New("TWELVE_DATA_API_KEY is required when MARKET_SOURCE=twelvedata"))
		}
	default:
		errs = append(errs, fmt.Errorf("MARKET_SOURCE must be yahoo, twelvedata or store, got %q", c.Market.Source))
	}
	if c.Market.Timeout <= 0 {
		errs = append(errs, errors.New("MARKET_TIMEOUT must be positive"))
	}

	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DB.Driver))
	}

	if c.Ingest.Hour < 0 || c.Ingest.Hour > 23 {
		errs = append(errs, fmt.Errorf("INGEST_HOUR must be between 0 and 23, got %d", c.Ingest.Hour))
	}
	if _, err := time.LoadLocation(c.Ingest.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("INGEST_TZ: %w", err))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// RedisAddr returns host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// IngestLocation returns the time zone daily ingest runs in.
func (c *Config) IngestLocation() *time.Location {
	loc, err := time.LoadLocation(c.Ingest.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseLevel converts LOG_LEVEL into a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
