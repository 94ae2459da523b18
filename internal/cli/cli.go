// Package cli holds the plumbing shared by every cafe subcommand: building the
// App from config, formatting output and mapping errors to exit codes.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/cafe/internal/app"
	"github.com/thenoetrevino/cafe/internal/cli/styles"
	"github.com/thenoetrevino/cafe/internal/config"
	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/logging"
)

type contextKey string

const (
	appKey        contextKey = "cafe.app"
	configPathKey contextKey = "cafe.config_path"
	dbPathKey     contextKey = "cafe.db_path"
)

// WithApp injects a ready App; GetCLIFromContext will use it instead of
// opening the configured database. Tests use this with an in-memory App.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithPaths records the global --config and --db flags
func WithPaths(ctx context.Context, configPath, dbPath string) context.Context {
	ctx = context.WithValue(ctx, configPathKey, configPath)
	return context.WithValue(ctx, dbPathKey, dbPath)
}

// ConfigPath returns the --config flag, or the default config location
func ConfigPath(ctx context.Context) (string, error) {
	if path, _ := ctx.Value(configPathKey).(string); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	owned    bool
	closeLog func() error
}

// GetCLIFromContext returns the injected App when present, otherwise loads
// the config, starts logging and opens the database.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: config.Default()}, nil
	}

	configPath, _ := ctx.Value(configPathKey).(string)
	dbPath, _ := ctx.Value(dbPathKey).(string)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	closeLog, err := logging.Init(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	styles.Init(cfg.Theme)

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application := app.New(db,
		app.WithLogger(logging.Logger),
		app.WithMaxShift(cfg.MaxShift()),
	)

	return &CLI{
		App:      application,
		Config:   cfg,
		owned:    true,
		closeLog: closeLog,
	}, nil
}

// Close releases the App and log file when this CLI created them.
// An injected App belongs to the caller and is left open.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	err := c.App.Close()
	if logErr := c.closeLog(); logErr != nil {
		slog.Error("failed to close log file", "error", logErr)
	}
	return err
}
