// Package unit holds all cli commands related to measurement units
// e.g., cafe unit ...
package unit

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
)

// UnitCmd returns the unit parent command
func UnitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage measurement units",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// CreateCmd returns the unit create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a measurement unit",
		Long: `Create a measurement unit for inventory amounts.

Examples:
  cafe unit create --name=tbsp
  UNIT_ID=$(cafe unit create --name=tbsp --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("name")
			return err
		}),
	}

	cmd.Flags().String("name", "", "Unit name (required)")
	handler.MarkRequired(cmd, "name")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	u, err := args.App.InventoryService.CreateUnit(ctx, args.GetString("name", ""))
	if err != nil {
		return nil, err
	}
	return &cli.Record{
		ID:     u.ID,
		Title:  "Unit created",
		Fields: []cli.Field{{Label: "ID", Value: strconv.Itoa(u.ID)}, {Label: "Name", Value: u.Name}},
		Data:   u,
	}, nil
}

// ListCmd returns the unit list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List measurement units",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	units, err := args.App.InventoryService.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	return listing(units), nil
}

func listing(units []*models.Unit) *cli.Listing {
	l := &cli.Listing{
		Title:   "Units",
		Headers: []string{"ID", "Name"},
		Empty:   "No units found",
		Data:    units,
	}
	for _, u := range units {
		l.IDs = append(l.IDs, u.ID)
		l.Rows = append(l.Rows, []string{strconv.Itoa(u.ID), u.Name})
	}
	return l
}

// DeleteCmd returns the unit delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a unit no inventory item uses",
		RunE: handler.Command(handler.HandlerFunc(runDelete), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseID("id")
			return err
		}),
	}
	cmd.Flags().Int("id", 0, "Unit ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	id := args.GetInt("id", 0)
	if err := args.App.InventoryService.DeleteUnit(ctx, id); err != nil {
		return nil, err
	}
	return cli.Deleted("unit", id), nil
}
