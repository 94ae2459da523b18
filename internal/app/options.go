package app

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/cafe/internal/metrics"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	maxShift time.Duration
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithMetrics shares a metrics instance instead of creating a fresh one
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *appConfig) {
		cfg.metrics = m
	}
}

// WithMaxShift sets the longest shift the staff service accepts
func WithMaxShift(d time.Duration) Option {
	return func(cfg *appConfig) {
		cfg.maxShift = d
	}
}
