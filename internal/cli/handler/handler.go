// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thenoetrevino/cafe/internal/app"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/config"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Handler defines the interface for command execution
type Handler interface {
	// Execute runs the command with parsed arguments
	Execute(ctx context.Context, args *Arguments) (any, error)
}

// HandlerFunc adapts a plain function to Handler
type HandlerFunc func(ctx context.Context, args *Arguments) (any, error)

// Execute implements Handler
func (f HandlerFunc) Execute(ctx context.Context, args *Arguments) (any, error) {
	return f(ctx, args)
}

// Arguments captures parsed CLI arguments and flags
type Arguments struct {
	Flags map[string]any
	Args  []string

	// App is the application container for this invocation
	App    *app.App
	Config *config.Config

	cmd *cobra.Command
}

// GetCmd returns the cobra command for access to flag parsing utilities
func (a *Arguments) GetCmd() *cobra.Command {
	return a.cmd
}

// Command wraps common command execution logic
// Returns a cobra RunE compatible function
func Command(handler Handler, parseFlags func(*cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		// Get formatter from flags
		jsonOutput, _ := cmd.Flags().GetBool("json")
		quietMode, _ := cmd.Flags().GetBool("quiet")
		formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

		// Parse flags
		if parseFlags != nil {
			if err := parseFlags(cmd); err != nil {
				return formatter.Report(cli.UsageError(err))
			}
		}

		// Initialize CLI
		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return formatter.Report(fmt.Errorf("initialization error: %w", err))
		}
		defer func() {
			if err := cliInstance.Close(); err != nil {
				slog.Error("failed to close CLI", "error", err)
			}
		}()

		// Build arguments map from all flags
		arguments := &Arguments{
			Flags:  parseFlagsToMap(cmd),
			Args:   args,
			App:    cliInstance.App,
			Config: cliInstance.Config,
			cmd:    cmd,
		}

		// Execute handler
		result, err := handler.Execute(ctx, arguments)
		if err != nil {
			slog.Debug("command failed", "command", cmd.CommandPath(), "error", err)
			return formatter.Report(err)
		}

		// Common output formatting
		return formatter.Success(result)
	}
}

// SimpleCommand wraps command execution with minimal setup
// Use this for commands that don't need complex flag parsing
func SimpleCommand(handler Handler) func(*cobra.Command, []string) error {
	return Command(handler, nil)
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// MarkRequired marks flags as required, logging if a flag is missing
func MarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
}

// parseFlagsToMap converts cobra command flags to a map
func parseFlagsToMap(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)

	// Visit all flags that were explicitly set
	cmd.Flags().Visit(func(f *pflag.Flag) {
		// Get the value based on flag type
		switch f.Value.Type() {
		case "string":
			if v, err := cmd.Flags().GetString(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "int":
			if v, err := cmd.Flags().GetInt(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "bool":
			if v, err := cmd.Flags().GetBool(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "float64":
			if v, err := cmd.Flags().GetFloat64(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "stringSlice":
			if v, err := cmd.Flags().GetStringSlice(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "stringArray":
			if v, err := cmd.Flags().GetStringArray(f.Name); err == nil {
				flags[f.Name] = v
			}
		default:
			slog.Debug("unsupported flag type", "flag", f.Name, "type", f.Value.Type())
		}
	})

	return flags
}

// Has reports whether the flag was set on the command line
func (a *Arguments) Has(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

// GetString retrieves a string flag with default
func (a *Arguments) GetString(name string, defaultVal string) string {
	if val, ok := a.Flags[name].(string); ok {
		return val
	}
	return defaultVal
}

// GetInt retrieves an int flag with default
func (a *Arguments) GetInt(name string, defaultVal int) int {
	if val, ok := a.Flags[name].(int); ok {
		return val
	}
	return defaultVal
}

// GetFloat64 retrieves a float flag with default
func (a *Arguments) GetFloat64(name string, defaultVal float64) float64 {
	if val, ok := a.Flags[name].(float64); ok {
		return val
	}
	return defaultVal
}

// GetBool retrieves a bool flag
func (a *Arguments) GetBool(name string) bool {
	val, _ := a.Flags[name].(bool)
	return val
}

// GetStringArray retrieves a repeated string flag
func (a *Arguments) GetStringArray(name string) []string {
	val, _ := a.Flags[name].([]string)
	return val
}

// StringPtr returns the flag value, or nil when the flag was not set
func (a *Arguments) StringPtr(name string) *string {
	if val, ok := a.Flags[name].(string); ok {
		return &val
	}
	return nil
}

// IntPtr returns the flag value, or nil when the flag was not set
func (a *Arguments) IntPtr(name string) *int {
	if val, ok := a.Flags[name].(int); ok {
		return &val
	}
	return nil
}

// Float64Ptr returns the flag value, or nil when the flag was not set
func (a *Arguments) Float64Ptr(name string) *float64 {
	if val, ok := a.Flags[name].(float64); ok {
		return &val
	}
	return nil
}

// BoolPtr returns the flag value, or nil when the flag was not set
func (a *Arguments) BoolPtr(name string) *bool {
	if val, ok := a.Flags[name].(bool); ok {
		return &val
	}
	return nil
}

// Date parses a YYYY-MM-DD flag. An unset flag gives the zero time.
func (a *Arguments) Date(name string) (time.Time, error) {
	s, ok := a.Flags[name].(string)
	if !ok || s == "" {
		return time.Time{}, nil
	}
	return validation.ParseDate(name, s)
}

// DatePtr parses a YYYY-MM-DD flag, nil when unset
func (a *Arguments) DatePtr(name string) (*time.Time, error) {
	if !a.Has(name) {
		return nil, nil
	}
	t, err := a.Date(name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Time parses an instant flag in local time. An unset flag gives the zero time.
func (a *Arguments) Time(name string) (time.Time, error) {
	s, ok := a.Flags[name].(string)
	if !ok || s == "" {
		return time.Time{}, nil
	}
	return validation.ParseTime(name, s, time.Local)
}
