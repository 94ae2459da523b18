// Package handler provides flag parsing utilities
package handler

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// FlagParser provides common flag checks run before a command touches the database
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseID extracts a positive ID from a flag
func (p *FlagParser) ParseID(flagName string) (int, error) {
	id, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("--%s must be greater than 0", flagName)
	}
	return id, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("--%s is required", flagName)
	}
	return value, nil
}

// ParseDate checks that a set date flag is YYYY-MM-DD; unset flags pass
func (p *FlagParser) ParseDate(flagName string) error {
	if !p.cmd.Flags().Changed(flagName) {
		return nil
	}
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	_, err = validation.ParseDate("--"+flagName, value)
	return err
}

// ParseOneOf checks that a set string flag has one of the allowed values
func (p *FlagParser) ParseOneOf(flagName string, allowed []string) error {
	if !p.cmd.Flags().Changed(flagName) {
		return nil
	}
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if !slices.Contains(allowed, strings.ToLower(strings.TrimSpace(value))) {
		return fmt.Errorf("--%s must be one of: %s", flagName, strings.Join(allowed, ", "))
	}
	return nil
}

// RequireAny fails unless at least one of the flags was set
func (p *FlagParser) RequireAny(flagNames ...string) error {
	for _, name := range flagNames {
		if p.cmd.Flags().Changed(name) {
			return nil
		}
	}
	quoted := make([]string, len(flagNames))
	for i, name := range flagNames {
		quoted[i] = "--" + name
	}
	return fmt.Errorf("at least one of %s is required", strings.Join(quoted, ", "))
}

// Exclusive fails if more than one of the flags was set
func (p *FlagParser) Exclusive(flagNames ...string) error {
	var set []string
	for _, name := range flagNames {
		if p.cmd.Flags().Changed(name) {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("%s cannot be used together", strings.Join(set, " and "))
	}
	return nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	if jsonOutput && quietMode {
		return false, false, errors.New("--json and --quiet cannot be used together")
	}
	return jsonOutput, quietMode, nil
}

// Checks runs each check in order and returns the first error
func Checks(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
