// Package config loads scoutline settings from an optional YAML file,
// defaults, and SCOUTLINE_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/scoutline/internal/db"
)

const (
	configPathEnv = "SCOUTLINE_CONFIG"
	dbDriverEnv   = "SCOUTLINE_DB_DRIVER"
	dbDSNEnv      = "SCOUTLINE_DB_DSN"
	logLevelEnv   = "SCOUTLINE_LOG_LEVEL"
	strictEnv     = "SCOUTLINE_STRICT_AUTO_COMPLETE"
)

// Config holds every tunable the CLI and services read.
type Config struct {
	Database    DatabaseConfig   `yaml:"database"`
	Log         LogConfig        `yaml:"log"`
	Suggestions SuggestionConfig `yaml:"suggestions"`
	TaskCache   CacheConfig      `yaml:"taskCache"`
}

// DatabaseConfig selects the SQL driver. Driver is "sqlite" or "pgx".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SuggestionConfig tunes suppression, staggering and refresh fan-out.
type SuggestionConfig struct {
	DuplicateWindowDays   int  `yaml:"duplicateWindowDays"`
	DismissalCooldownDays int  `yaml:"dismissalCooldownDays"`
	SurfaceLimit          int  `yaml:"surfaceLimit"`
	StrictAutoComplete    bool `yaml:"strictAutoComplete"`
	RefreshConcurrency    int  `yaml:"refreshConcurrency"`
	RuleConcurrency       int  `yaml:"ruleConcurrency"`
}

// CacheConfig bounds the task catalog cache.
type CacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

// Default returns the built-in configuration with an SQLite store under the
// user's home directory.
func Default() Config {
	dsn := "scoutline.db"
	if home, err := os.UserHomeDir(); err == nil {
		dsn = filepath.Join(home, ".scoutline", "scoutline.db")
	}
	return Config{
		Database: DatabaseConfig{Driver: db.DriverSQLite, DSN: dsn},
		Log:      LogConfig{Level: "warn"},
		Suggestions: SuggestionConfig{
			DuplicateWindowDays:   7,
			DismissalCooldownDays: 30,
			SurfaceLimit:          3,
			StrictAutoComplete:    false,
			RefreshConcurrency:    4,
			RuleConcurrency:       4,
		},
		TaskCache: CacheConfig{Size: 16, TTL: 10 * time.Minute},
	}
}

// Load reads the file named by SCOUTLINE_CONFIG (if set) over the defaults
// and applies environment overrides. Keys absent from the file keep their
// defaults; keys present win, zero included. A missing or malformed file is
// an error, as is an unparseable env value.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if cfg, err = Parse(raw); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Keys absent from raw keep their
// default values.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	s := c.Suggestions
	if s.DuplicateWindowDays < 1 {
		return fmt.Errorf("duplicateWindowDays must be >= 1, got %d", s.DuplicateWindowDays)
	}
	if s.DismissalCooldownDays < 0 {
		return fmt.Errorf("dismissalCooldownDays must be >= 0, got %d", s.DismissalCooldownDays)
	}
	if s.SurfaceLimit < 1 {
		return fmt.Errorf("surfaceLimit must be >= 1, got %d", s.SurfaceLimit)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(dbDriverEnv); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(dbDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(strictEnv); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", strictEnv, v)
		}
		c.Suggestions.StrictAutoComplete = b
	}
	return nil
}

// SlogLevel maps the configured level name onto slog. Unknown names mean
// debug.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
