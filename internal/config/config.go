// Package config loads cafe settings from a YAML file, an optional .env file
// and CAFE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/thenoetrevino/cafe/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvDBPath        = "CAFE_DB_PATH"
	EnvLogLevel      = "CAFE_LOG_LEVEL"
	EnvLogFile       = "CAFE_LOG_FILE"
	EnvCurrency      = "CAFE_CURRENCY"
	EnvMaxShiftHours = "CAFE_MAX_SHIFT_HOURS"
	EnvThemeFile     = "CAFE_THEME_FILE"
)

// Defaults for values missing from every source
const (
	DefaultLogLevel      = "info"
	DefaultCurrency      = "USD"
	DefaultMaxShiftHours = 12
)

// LogToStderr as log.file sends logs to stderr instead of a file
const LogToStderr = "-"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig     `yaml:"database"`
	Log      LogConfig          `yaml:"log"`
	Currency string             `yaml:"currency"`
	Staff    StaffConfig        `yaml:"staff"`
	Theme    colors.ColorScheme `yaml:"theme"`
}

// DatabaseConfig locates the SQLite file
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// StaffConfig holds scheduling limits
type StaffConfig struct {
	MaxShiftHours float64 `yaml:"max_shift_hours"`
}

// Default returns a config with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config at path, or at the default location when path is empty.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			slog.Debug("no config path, using defaults", "error", err)
		}
	}

	var config Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	loadThemeFile(&config)

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the config as YAML to path, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings the rest of the program cannot honour
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Staff.MaxShiftHours <= 0 || c.Staff.MaxShiftHours > 24 {
		return fmt.Errorf("staff.max_shift_hours must be in (0, 24], got %g", c.Staff.MaxShiftHours)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", c.Currency)
	}
	return nil
}

// MaxShift returns staff.max_shift_hours as a duration
func (c *Config) MaxShift() time.Duration {
	return time.Duration(c.Staff.MaxShiftHours * float64(time.Hour))
}

// ParseLevel maps debug|info|warn|error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: want debug, info, warn or error", s)
	}
	return level, nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "cafe", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "cafe", "config.yaml"), nil
}

// dataDir returns ~/.cafe, where the database and logs live by default
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cafe"
	}
	return filepath.Join(homeDir, ".cafe")
}

// loadEnvFile exports the variables in path without overriding ones already set
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// loadThemeFile loads and merges theme from CAFE_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("failed to read theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("failed to parse theme file", "path", themeFile, "error", err)
		return
	}
	if themeConfig.Theme.Preset != "" {
		config.Theme.Preset = themeConfig.Theme.Preset
	}
	config.Theme.MergeFrom(themeConfig.Theme, true)
}

// applyEnv overrides file values with CAFE_* variables
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDBPath); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok && v != "" {
		c.Log.File = v
	}
	if v, ok := os.LookupEnv(EnvCurrency); ok && v != "" {
		c.Currency = v
	}
	if v, ok := os.LookupEnv(EnvMaxShiftHours); ok && v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvMaxShiftHours, v, err)
		}
		c.Staff.MaxShiftHours = hours
	}
	return nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(dataDir(), "cafe.db")
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dataDir(), "logs", "cafe.log")
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	c.Currency = strings.ToUpper(c.Currency)
	if c.Staff.MaxShiftHours == 0 {
		c.Staff.MaxShiftHours = DefaultMaxShiftHours
	}
	c.Theme.ApplyDefaults()
}
