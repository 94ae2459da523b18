// Package logging installs the process-wide slog logger.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/cafe/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system from the log section of the config.
// Logs go to cfg.File in append mode, or to stderr when cfg.File is "-".
// Uses text format for human readability. The returned func closes the file.
func Init(cfg config.LogConfig) (func() error, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if cfg.File != config.LogToStderr {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = file
		closeFn = file.Close
	}

	// Create text handler (human readable)
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same sink
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return closeFn, nil
}
