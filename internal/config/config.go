// Package config loads timeplan settings from ~/.timeplan/config.yaml with
// TIMEPLAN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Policy   PolicyConfig   `yaml:"policy"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	// CacheEntries bounds the estimate cache; 0 uses the engine default.
	CacheEntries int `yaml:"cache_entries"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	DSN    string `yaml:"dsn"`    // file path for sqlite, connection string for postgres
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// RateLimit is API requests per second per client; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
	// TrustProxy honours X-Real-IP when rate limiting. Enable it only
	// behind a reverse proxy that sets the header.
	TrustProxy bool `yaml:"trust_proxy"`
}

type PolicyConfig struct {
	Gap                   string `yaml:"gap"`
	BudgetEnforcement     string `yaml:"budget_enforcement"`
	RequireFullAllocation bool   `yaml:"require_full_allocation"`
	MixedDay              string `yaml:"mixed_day"`
}

// Dir is the per-user state directory, ~/.timeplan.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".timeplan"), nil
}

// DefaultConfig returns defaults without consulting the file or environment.
func DefaultConfig() *Config {
	dsn := "timeplan.db"
	if dir, err := Dir(); err == nil {
		dsn = filepath.Join(dir, "timeplan.db")
	}
	pol := domain.DefaultPolicy()
	return &Config{
		Database: DatabaseConfig{Driver: db.DriverSQLite, DSN: dsn},
		Server:   ServerConfig{Addr: ":8080"},
		Policy: PolicyConfig{
			Gap:               string(pol.Gap),
			BudgetEnforcement: string(pol.Budget),
			MixedDay:          string(pol.MixedDay),
		},
		LogLevel: "info",
	}
}

// Load reads ~/.timeplan/config.yaml (a missing file is fine), then applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, "config.yaml"))
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TIMEPLAN_DB"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("TIMEPLAN_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("TIMEPLAN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TIMEPLAN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TIMEPLAN_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.Server.RateLimit = f
		}
	}
	if v := os.Getenv("TIMEPLAN_TRUST_PROXY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.TrustProxy = b
		}
	}
	if v := os.Getenv("TIMEPLAN_GAP_POLICY"); v != "" {
		c.Policy.Gap = v
	}
	if v := os.Getenv("TIMEPLAN_BUDGET_ENFORCEMENT"); v != "" {
		c.Policy.BudgetEnforcement = v
	}
	if v := os.Getenv("TIMEPLAN_REQUIRE_FULL_ALLOCATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Policy.RequireFullAllocation = b
		}
	}
	if v := os.Getenv("TIMEPLAN_CACHE_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.CacheEntries = n
		}
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("database.driver: unsupported value %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.CacheEntries < 0 {
		return fmt.Errorf("cache_entries must be >= 0")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must be >= 0")
	}
	return c.DomainPolicy().Validate()
}

// DomainPolicy converts the policy section to the engine's Policy.
func (c *Config) DomainPolicy() domain.Policy {
	return domain.Policy{
		Gap:                   domain.GapPolicy(c.Policy.Gap),
		Budget:                domain.BudgetEnforcement(c.Policy.BudgetEnforcement),
		RequireFullAllocation: c.Policy.RequireFullAllocation,
		MixedDay:              domain.MixedDayPolicy(c.Policy.MixedDay),
	}
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
}
