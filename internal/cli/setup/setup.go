// Package setup holds the commands that manage the cafe config file
package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/config"
	"gopkg.in/yaml.v3"
)

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create or inspect the config file",
		Long: `Manage the cafe config file. Settings are read from the file, then from
CAFE_* environment variables (a .env file in the working directory is loaded
first), which take precedence.`,
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// outputFlags reads --json and --quiet the same way handler commands do
func outputFlags(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOut, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOut, Quiet: quiet}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().BoolP("quiet", "q", false, "Minimal output")
}

// InitCmd returns the setup init subcommand
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default settings to the config file so they can be edited.

Examples:
  cafe setup init
  cafe setup init --config=./cafe.yaml --force
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := outputFlags(cmd)
			force, _ := cmd.Flags().GetBool("force")
			path, err := writeDefault(cmd, force)
			if err != nil {
				return formatter.Report(err)
			}
			if formatter.Quiet {
				return nil
			}
			return formatter.Success(&cli.Message{Text: "Wrote " + path})
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	addOutputFlags(cmd)
	return cmd
}

func writeDefault(cmd *cobra.Command, force bool) (string, error) {
	path, err := cli.ConfigPath(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("failed to find config path: %w", err)
	}

	_, err = os.Stat(path)
	switch {
	case err == nil && !force:
		return "", cli.UsageError(fmt.Errorf("%s already exists, pass --force to overwrite it", path))
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := config.Default().Save(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ShowCmd returns the setup show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings cafe will run with after the config file and
environment variables are applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := outputFlags(cmd)
			path, err := cli.ConfigPath(cmd.Context())
			if err != nil {
				return formatter.Report(fmt.Errorf("failed to find config path: %w", err))
			}
			cfg, err := config.Load(path)
			if err != nil {
				return formatter.Report(err)
			}
			return formatter.Success(&settings{Path: path, Config: cfg})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

// settings prints as YAML for humans and as JSON for --json
type settings struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func (s *settings) Pretty() string {
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return fmt.Sprintf("%+v", s.Config)
	}
	return "# " + s.Path + "\n" + string(data)
}
