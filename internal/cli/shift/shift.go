// Package shift holds all cli commands related to work shifts
// e.g., cafe shift ...
package shift

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

const timeHelp = "YYYY-MM-DD HH:MM in local time, or RFC 3339"

// ShiftCmd returns the shift parent command
func ShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shift",
		Aliases: []string{"shifts"},
		Short:   "Record and manage work shifts",
		Long: `Shifts are the hours an employee worked. A shift may not overlap another
shift of the same employee, may not start before the hire date, and may not
be longer than the configured maximum (staff.max_shift_hours).`,
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(updateCmd())
	cmd.AddCommand(deleteCmd())

	return cmd
}

func hours(sh *models.Shift) string {
	return strconv.FormatFloat(sh.Hours(), 'f', 2, 64)
}

func record(title string, sh *models.Shift) *cli.Record {
	return &cli.Record{
		ID:    sh.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(sh.ID)},
			{Label: "Employee", Value: strconv.Itoa(sh.EmployeeID)},
			{Label: "Start", Value: cli.Instant(sh.StartsAt)},
			{Label: "End", Value: cli.Instant(sh.EndsAt)},
			{Label: "Hours", Value: hours(sh)},
		},
		Data: sh,
	}
}

func requireID(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("id")
	return err
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a shift",
		Long: `Record a shift worked by an employee.

Examples:
  cafe shift create --employee=3 --start="2024-03-04 07:00" --end="2024-03-04 14:30"
  cafe shift create --employee=3 --start=2024-03-04T07:00:00Z --end=2024-03-04T14:30:00Z --json
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("employee"); return err },
				func() error { _, err := p.ParseString("start"); return err },
				func() error { _, err := p.ParseString("end"); return err },
			)
		}),
	}
	cmd.Flags().Int("employee", 0, "Employee ID (required)")
	cmd.Flags().String("start", "", "Shift start, "+timeHelp+" (required)")
	cmd.Flags().String("end", "", "Shift end, "+timeHelp+" (required)")
	handler.MarkRequired(cmd, "employee", "start", "end")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	start, err := args.Time("start")
	if err != nil {
		return nil, err
	}
	end, err := args.Time("end")
	if err != nil {
		return nil, err
	}
	sh, err := args.App.StaffService.CreateShift(ctx, args.GetInt("employee", 0), start, end)
	if err != nil {
		return nil, err
	}
	return record("Shift recorded", sh), nil
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one shift",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			sh, err := args.App.StaffService.GetShift(ctx, args.GetInt("id", 0))
			if err != nil {
				return nil, err
			}
			return record(fmt.Sprintf("Shift %d", sh.ID), sh), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Shift ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts",
		Long: `List shifts in start order. --from and --to are inclusive dates and match
shifts by the day they start.

Examples:
  cafe shift list --employee=3 --from=2024-03-01 --to=2024-03-15
`,
		RunE: handler.Command(handler.HandlerFunc(runList), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { return p.ParseDate("from") },
				func() error { return p.ParseDate("to") },
			)
		}),
	}
	cmd.Flags().Int("employee", 0, "Only shifts of this employee")
	cmd.Flags().String("from", "", "First day, YYYY-MM-DD")
	cmd.Flags().String("to", "", "Last day, YYYY-MM-DD")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	from, err := args.Date("from")
	if err != nil {
		return nil, err
	}
	to, err := args.Date("to")
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("--from %s is after --to %s: %w", cli.Date(from), cli.Date(to), validation.ErrInvalidRange)
	}
	if !to.IsZero() {
		// the repository bound is exclusive
		to = to.AddDate(0, 0, 1)
	}

	shifts, err := args.App.StaffService.ListShifts(ctx, args.IntPtr("employee"), from, to)
	if err != nil {
		return nil, err
	}

	l := &cli.Listing{
		Title:   "Shifts",
		Headers: []string{"ID", "Employee", "Start", "End", "Hours"},
		Empty:   "No shifts found",
		Data:    shifts,
	}
	var total float64
	for _, sh := range shifts {
		l.IDs = append(l.IDs, sh.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(sh.ID), strconv.Itoa(sh.EmployeeID), cli.Instant(sh.StartsAt), cli.Instant(sh.EndsAt), hours(sh),
		})
		total += sh.Hours()
	}
	if len(shifts) > 0 {
		l.Footer = "Total hours: " + strconv.FormatFloat(total, 'f', 2, 64)
	}
	return l, nil
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Move a shift",
		Long: `Change the start or end of a shift. Only the flags you pass change.

Examples:
  cafe shift update --id=12 --end="2024-03-04 15:00"
`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("id"); return err },
				func() error { return p.RequireAny("start", "end") },
			)
		}),
	}
	cmd.Flags().Int("id", 0, "Shift ID (required)")
	cmd.Flags().String("start", "", "New start, "+timeHelp)
	cmd.Flags().String("end", "", "New end, "+timeHelp)
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App.StaffService
	current, err := svc.GetShift(ctx, args.GetInt("id", 0))
	if err != nil {
		return nil, err
	}

	start, end := current.StartsAt, current.EndsAt
	if args.Has("start") {
		if start, err = args.Time("start"); err != nil {
			return nil, err
		}
	}
	if args.Has("end") {
		if end, err = args.Time("end"); err != nil {
			return nil, err
		}
	}

	sh, err := svc.UpdateShift(ctx, current.ID, start, end)
	if err != nil {
		return nil, err
	}
	return record("Shift updated", sh), nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a shift",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id := args.GetInt("id", 0)
			if err := args.App.StaffService.DeleteShift(ctx, id); err != nil {
				return nil, err
			}
			return cli.Deleted("shift", id), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Shift ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}
