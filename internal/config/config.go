package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	DBURL             string        `env:"DB_URL"`
	JWTSecret         string        `env:"JWT_SECRET"`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	LogMode           string        `env:"LOG_MODE" envDefault:"development"`
	ReadTimeoutSecs   int           `env:"SERVER_READ_TIMEOUT" envDefault:"15"`
	WriteTimeoutSecs  int           `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
	IdleTimeoutSecs   int           `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns        int           `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxIdleSecs     int           `env:"DB_MAX_CONN_IDLE_SECS" envDefault:"300"`
	DBMaxLifeSecs     int           `env:"DB_MAX_CONN_LIFETIME_SECS" envDefault:"3600"`
	DBConnTimeoutSecs int           `env:"DB_CONN_TIMEOUT_SECS" envDefault:"10"`
	DBStatementCache  int           `env:"DB_STATEMENT_CACHE_CAPACITY" envDefault:"256"`
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.DBURL = strings.TrimSpace(cfg.DBURL)
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 16 {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive")
	}
	switch strings.ToLower(cfg.LogMode) {
	case "development", "dev", "production", "prod":
	default:
		return Config{}, fmt.Errorf("LOG_MODE must be development or production")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}

	return cfg, nil
}

// ImportConfig is the subset of settings used by the stats importer.
type ImportConfig struct {
	DBURL   string `env:"DB_URL"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`
}

// LoadImport reads the importer settings. DB_URL may be empty for dry runs.
func LoadImport() (ImportConfig, error) {
	var cfg ImportConfig
	if err := env.Parse(&cfg); err != nil {
		return ImportConfig{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBURL = strings.TrimSpace(cfg.DBURL)
	return cfg, nil
}
