// Package cmd wires every cafe command group under the root command
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/cost"
	"github.com/thenoetrevino/cafe/internal/cli/employee"
	"github.com/thenoetrevino/cafe/internal/cli/expense"
	"github.com/thenoetrevino/cafe/internal/cli/inventory"
	"github.com/thenoetrevino/cafe/internal/cli/menu"
	"github.com/thenoetrevino/cafe/internal/cli/order"
	"github.com/thenoetrevino/cafe/internal/cli/payment"
	"github.com/thenoetrevino/cafe/internal/cli/position"
	"github.com/thenoetrevino/cafe/internal/cli/recipe"
	"github.com/thenoetrevino/cafe/internal/cli/setup"
	"github.com/thenoetrevino/cafe/internal/cli/shift"
	"github.com/thenoetrevino/cafe/internal/cli/supplier"
	"github.com/thenoetrevino/cafe/internal/cli/unit"
)

// Version is set at build time with -ldflags "-X github.com/thenoetrevino/cafe/cmd.Version=..."
var Version = "dev"

// NewRootCmd builds the cafe command tree
func NewRootCmd() *cobra.Command {
	var configPath, dbPath string

	root := &cobra.Command{
		Use:   "cafe",
		Short: "Cafe - record keeping for a small café",
		Long: `Cafe keeps the records of a small café in a local SQLite database:
inventory, menu and recipes, suppliers and supply orders, staff, shifts,
payroll, expenses and cost estimates.

Every command accepts --json for machine-readable output and --quiet to print
only IDs.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(cli.WithPaths(cmd.Context(), configPath, dbPath))
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/cafe/config.yaml)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file, overrides the config")

	root.AddCommand(
		unit.UnitCmd(),
		inventory.InventoryCmd(),
		menu.MenuCmd(),
		recipe.RecipeCmd(),
		supplier.SupplierCmd(),
		order.OrderCmd(),
		position.PositionCmd(),
		employee.EmployeeCmd(),
		shift.ShiftCmd(),
		payment.PaymentCmd(),
		expense.ExpenseCmd(),
		cost.CostCmd(),
		setup.SetupCmd(),
	)

	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
