// Package position holds all cli commands related to job positions
// e.g., cafe position ...
package position

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
)

// PositionCmd returns the position parent command
func PositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "position",
		Aliases: []string{"positions"},
		Short:   "Manage job positions and hourly rates",
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(updateCmd())
	cmd.AddCommand(deleteCmd())

	return cmd
}

func record(title string, p *models.Position) *cli.Record {
	return &cli.Record{
		ID:    p.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(p.ID)},
			{Label: "Name", Value: p.Name},
			{Label: "Hourly rate", Value: cli.Money(p.HourlyRate)},
		},
		Data: p,
	}
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a position",
		Long: `Add a job position. Payroll pays worked hours at the position's hourly rate.

Examples:
  cafe position create --name=Barista --rate=15.5
`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			p, err := args.App.StaffService.CreatePosition(ctx, args.GetString("name", ""), args.GetFloat64("rate", 0))
			if err != nil {
				return nil, err
			}
			return record("Position created", p), nil
		}), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("name")
			return err
		}),
	}
	cmd.Flags().String("name", "", "Position name (required)")
	cmd.Flags().Float64("rate", 0, "Hourly rate (required)")
	handler.MarkRequired(cmd, "name", "rate")
	handler.AddOutputFlags(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List positions",
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			positions, err := args.App.StaffService.ListPositions(ctx)
			if err != nil {
				return nil, err
			}
			l := &cli.Listing{
				Title:   "Positions",
				Headers: []string{"ID", "Name", "Hourly rate"},
				Empty:   "No positions found",
				Data:    positions,
			}
			for _, p := range positions {
				l.IDs = append(l.IDs, p.ID)
				l.Rows = append(l.Rows, []string{strconv.Itoa(p.ID), p.Name, cli.Money(p.HourlyRate)})
			}
			return l, nil
		})),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename a position or change its rate",
		Long: `Update a position. Only the flags you pass change. A new rate applies to
payroll runs from now on; payments already recorded keep their amount.

Examples:
  cafe position update --id=1 --rate=16
`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("id"); return err },
				func() error { return p.RequireAny("name", "rate") },
			)
		}),
	}
	cmd.Flags().Int("id", 0, "Position ID (required)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Float64("rate", 0, "New hourly rate")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App.StaffService
	id := args.GetInt("id", 0)

	positions, err := svc.ListPositions(ctx)
	if err != nil {
		return nil, err
	}
	var current *models.Position
	for _, p := range positions {
		if p.ID == id {
			current = p
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("position %d: %w", id, models.ErrNotFound)
	}

	p, err := svc.UpdatePosition(ctx, id, args.GetString("name", current.Name), args.GetFloat64("rate", current.HourlyRate))
	if err != nil {
		return nil, err
	}
	return record("Position updated", p), nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a position nobody holds",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id := args.GetInt("id", 0)
			if err := args.App.StaffService.DeletePosition(ctx, id); err != nil {
				return nil, err
			}
			return cli.Deleted("position", id), nil
		}), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseID("id")
			return err
		}),
	}
	cmd.Flags().Int("id", 0, "Position ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}
