// Package employee holds all cli commands related to staff members
// e.g., cafe employee ...
package employee

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	staffservice "github.com/thenoetrevino/cafe/internal/services/staff"
)

// EmployeeCmd returns the employee parent command
func EmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Manage employees",
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(updateCmd())
	cmd.AddCommand(deleteCmd())

	return cmd
}

func record(title string, e *models.Employee) *cli.Record {
	return &cli.Record{
		ID:    e.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(e.ID)},
			{Label: "Name", Value: e.FullName()},
			{Label: "Position", Value: e.PositionName},
			{Label: "Phone", Value: cli.OrDash(e.Phone)},
			{Label: "Email", Value: cli.OrDash(e.Email)},
			{Label: "Hired", Value: cli.Date(e.HiredOn)},
		},
		Data: e,
	}
}

func requireID(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("id")
	return err
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		Long: `Add an employee. The hire date defaults to today; shifts cannot start before it.

Examples:
  cafe employee create --first=Ana --last=Silva --position=1 --hired=2024-01-08
  cafe employee create --first=Ben --last=Ng --position=2 --email=ben@cafe.example --json
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseString("first"); return err },
				func() error { _, err := p.ParseString("last"); return err },
				func() error { _, err := p.ParseID("position"); return err },
				func() error { return p.ParseDate("hired") },
			)
		}),
	}
	cmd.Flags().String("first", "", "First name (required)")
	cmd.Flags().String("last", "", "Last name (required)")
	cmd.Flags().Int("position", 0, "Position ID (required)")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("hired", "", "Hire date, YYYY-MM-DD (default today)")
	handler.MarkRequired(cmd, "first", "last", "position")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	hired, err := args.Date("hired")
	if err != nil {
		return nil, err
	}
	e, err := args.App.StaffService.CreateEmployee(ctx, staffservice.CreateEmployeeRequest{
		FirstName:  args.GetString("first", ""),
		LastName:   args.GetString("last", ""),
		PositionID: args.GetInt("position", 0),
		Phone:      args.GetString("phone", ""),
		Email:      args.GetString("email", ""),
		HiredOn:    hired,
	})
	if err != nil {
		return nil, err
	}
	return record("Employee created", e), nil
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one employee",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			e, err := args.App.StaffService.GetEmployee(ctx, args.GetInt("id", 0))
			if err != nil {
				return nil, err
			}
			return record(e.FullName(), e), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Employee ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Long: `List employees by name, optionally for one position.

Examples:
  cafe employee list
  cafe employee list --position=1 --quiet
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runList)),
	}
	cmd.Flags().Int("position", 0, "Only employees in this position")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	employees, err := args.App.StaffService.ListEmployees(ctx, args.IntPtr("position"))
	if err != nil {
		return nil, err
	}
	l := &cli.Listing{
		Title:   "Employees",
		Headers: []string{"ID", "Name", "Position", "Phone", "Hired"},
		Empty:   "No employees found",
		Data:    employees,
	}
	for _, e := range employees {
		l.IDs = append(l.IDs, e.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(e.ID), e.FullName(), e.PositionName, cli.OrDash(e.Phone), cli.Date(e.HiredOn),
		})
	}
	return l, nil
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an employee",
		Long: `Update an employee. Only the flags you pass change; pass an empty value
to clear the phone or email.

Examples:
  cafe employee update --id=3 --position=2
  cafe employee update --id=3 --phone=""
`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("id"); return err },
				func() error { return p.RequireAny("first", "last", "position", "phone", "email", "hired") },
				func() error { return p.ParseDate("hired") },
			)
		}),
	}
	cmd.Flags().Int("id", 0, "Employee ID (required)")
	cmd.Flags().String("first", "", "New first name")
	cmd.Flags().String("last", "", "New last name")
	cmd.Flags().Int("position", 0, "New position ID")
	cmd.Flags().String("phone", "", "New phone number")
	cmd.Flags().String("email", "", "New email address")
	cmd.Flags().String("hired", "", "New hire date, YYYY-MM-DD")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	hired, err := args.DatePtr("hired")
	if err != nil {
		return nil, err
	}
	e, err := args.App.StaffService.UpdateEmployee(ctx, staffservice.UpdateEmployeeRequest{
		ID:         args.GetInt("id", 0),
		FirstName:  args.StringPtr("first"),
		LastName:   args.StringPtr("last"),
		PositionID: args.IntPtr("position"),
		Phone:      args.StringPtr("phone"),
		Email:      args.StringPtr("email"),
		HiredOn:    hired,
	})
	if err != nil {
		return nil, err
	}
	return record("Employee updated", e), nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an employee",
		Long: `Delete an employee and their shifts. Employees with recorded payments
cannot be deleted.`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id := args.GetInt("id", 0)
			if err := args.App.StaffService.DeleteEmployee(ctx, id); err != nil {
				return nil, err
			}
			return cli.Deleted("employee", id), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Employee ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}
