package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a fresh temp dir and clears CAFE_* overrides
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{EnvDBPath, EnvLogLevel, EnvLogFile, EnvCurrency, EnvMaxShiftHours, EnvThemeFile} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigWithoutFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".cafe", "cafe.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(dir, ".cafe", "logs", "cafe.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 12*time.Hour, cfg.MaxShift())
	assert.Equal(t, "default", cfg.Theme.Preset)
	assert.NotEmpty(t, cfg.Theme.Accent)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "cafe", "config.yaml"), `
database:
  path: /srv/cafe.db
log:
  level: DEBUG
  file: "-"
currency: eur
staff:
  max_shift_hours: 9.5
theme:
  preset: latte
  accent: "#FF0000"
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/cafe.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogToStderr, cfg.Log.File)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 9*time.Hour+30*time.Minute, cfg.MaxShift())
	assert.Equal(t, "#FF0000", cfg.Theme.Accent)
	assert.Equal(t, "latte", cfg.Theme.Preset)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "database:\n  path: /from/file.db\ncurrency: EUR\n")

	t.Setenv(EnvDBPath, "/from/env.db")
	t.Setenv(EnvMaxShiftHours, "8")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Database.Path)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 8*time.Hour, cfg.MaxShift())
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "malformed yaml", file: "database: [unclosed"},
		{name: "bad level", file: "log:\n  level: loud\n"},
		{name: "shift too long", file: "staff:\n  max_shift_hours: 30\n"},
		{name: "negative shift", file: "staff:\n  max_shift_hours: -1\n"},
		{name: "bad currency", file: "currency: dollars\n"},
		{name: "unparsable env", env: map[string]string{EnvMaxShiftHours: "twelve"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.yaml")
			writeFile(t, path, tc.file)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestThemeFileLoading(t *testing.T) {
	dir := isolate(t)
	themePath := filepath.Join(dir, "theme.yaml")
	writeFile(t, themePath, `theme:
  accent: "#FF0000"
  success: "#00FF00"
`)
	t.Setenv(EnvThemeFile, themePath)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.Theme.Accent)
	assert.Equal(t, "#00FF00", cfg.Theme.Success)
	assert.NotEmpty(t, cfg.Theme.Error, "other colors keep their defaults")
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "CAFE_CURRENCY=GBP\nCAFE_DB_PATH=/env/file.db\n")
	t.Setenv(EnvDBPath, "/already/set.db")
	// godotenv skips variables that exist at all, even when empty
	require.NoError(t, os.Unsetenv(EnvCurrency))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "GBP", os.Getenv(EnvCurrency))
	assert.Equal(t, "/already/set.db", os.Getenv(EnvDBPath), "existing variables win over .env")

	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Currency = "CAD"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "CAD", loaded.Currency)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
