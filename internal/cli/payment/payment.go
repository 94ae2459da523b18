// Package payment holds the cli commands for salary payments and payroll
// e.g., cafe payment ...
package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	staffservice "github.com/thenoetrevino/cafe/internal/services/staff"
)

// PaymentCmd returns the payment parent command
func PaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments", "pay"},
		Short:   "Record salary payments and run payroll",
		Long: `Payments cover an inclusive period of days. Periods of one employee may not
overlap, and a payment cannot be made before its period starts.`,
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(deleteCmd())
	cmd.AddCommand(payrollCmd())
	cmd.AddCommand(hoursCmd())

	return cmd
}

func period(p *models.Payment) string {
	return cli.Date(p.PeriodStart) + " .. " + cli.Date(p.PeriodEnd)
}

func record(title string, p *models.Payment) *cli.Record {
	return &cli.Record{
		ID:    p.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(p.ID)},
			{Label: "Employee", Value: strconv.Itoa(p.EmployeeID)},
			{Label: "Period", Value: period(p)},
			{Label: "Amount", Value: cli.Money(p.Amount)},
			{Label: "Paid", Value: cli.Date(p.PaidOn)},
		},
		Data: p,
	}
}

func requireID(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("id")
	return err
}

// periodFlags adds the --employee, --from and --to flags shared by several commands
func periodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("employee", 0, "Employee ID (required)")
	cmd.Flags().String("from", "", "First day of the period, YYYY-MM-DD (required)")
	cmd.Flags().String("to", "", "Last day of the period, YYYY-MM-DD (required)")
	handler.MarkRequired(cmd, "employee", "from", "to")
}

func parsePeriodFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	return handler.Checks(
		func() error { _, err := p.ParseID("employee"); return err },
		func() error { return p.ParseDate("from") },
		func() error { return p.ParseDate("to") },
		func() error { return p.ParseDate("paid") },
	)
}

func readPeriod(args *handler.Arguments) (from, to, paid time.Time, err error) {
	if from, err = args.Date("from"); err != nil {
		return
	}
	if to, err = args.Date("to"); err != nil {
		return
	}
	paid, err = args.Date("paid")
	return
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a payment",
		Long: `Record a payment of a fixed amount. Use 'cafe payment payroll' to pay
worked hours at the position's rate instead.

Examples:
  cafe payment create --employee=3 --from=2024-03-01 --to=2024-03-15 --amount=900 --paid=2024-03-16
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), parsePeriodFlags),
	}
	periodFlags(cmd)
	cmd.Flags().Float64("amount", 0, "Amount paid (required)")
	cmd.Flags().String("paid", "", "Payment date, YYYY-MM-DD (default today)")
	handler.MarkRequired(cmd, "amount")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	from, to, paid, err := readPeriod(args)
	if err != nil {
		return nil, err
	}
	p, err := args.App.StaffService.CreatePayment(ctx, staffservice.PaymentRequest{
		EmployeeID:  args.GetInt("employee", 0),
		PeriodStart: from,
		PeriodEnd:   to,
		Amount:      args.GetFloat64("amount", 0),
		PaidOn:      paid,
	})
	if err != nil {
		return nil, err
	}
	return record("Payment recorded", p), nil
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one payment",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			p, err := args.App.StaffService.GetPayment(ctx, args.GetInt("id", 0))
			if err != nil {
				return nil, err
			}
			return record(fmt.Sprintf("Payment %d", p.ID), p), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Payment ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: handler.SimpleCommand(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			payments, err := args.App.StaffService.ListPayments(ctx, args.IntPtr("employee"))
			if err != nil {
				return nil, err
			}
			l := &cli.Listing{
				Title:   "Payments",
				Headers: []string{"ID", "Employee", "Period", "Amount", "Paid"},
				Empty:   "No payments found",
				Data:    payments,
			}
			var total float64
			for _, p := range payments {
				l.IDs = append(l.IDs, p.ID)
				l.Rows = append(l.Rows, []string{
					strconv.Itoa(p.ID), strconv.Itoa(p.EmployeeID), period(p), cli.Money(p.Amount), cli.Date(p.PaidOn),
				})
				total += p.Amount
			}
			if len(payments) > 0 {
				l.Footer = "Total paid: " + cli.Money(total)
			}
			return l, nil
		})),
	}
	cmd.Flags().Int("employee", 0, "Only payments to this employee")
	handler.AddOutputFlags(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a payment",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id := args.GetInt("id", 0)
			if err := args.App.StaffService.DeletePayment(ctx, id); err != nil {
				return nil, err
			}
			return cli.Deleted("payment", id), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Payment ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func payrollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Pay an employee for the hours worked in a period",
		Long: `Sum the shifts that start within the period and record a payment of
hours times the hourly rate of the employee's position.

Examples:
  cafe payment payroll --employee=3 --from=2024-03-01 --to=2024-03-15
`,
		RunE: handler.Command(handler.HandlerFunc(runPayroll), parsePeriodFlags),
	}
	periodFlags(cmd)
	cmd.Flags().String("paid", "", "Payment date, YYYY-MM-DD (default today)")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runPayroll(ctx context.Context, args *handler.Arguments) (any, error) {
	from, to, paid, err := readPeriod(args)
	if err != nil {
		return nil, err
	}
	res, err := args.App.StaffService.RunPayroll(ctx, staffservice.PayrollRequest{
		EmployeeID:  args.GetInt("employee", 0),
		PeriodStart: from,
		PeriodEnd:   to,
		PaidOn:      paid,
	})
	if err != nil {
		return nil, err
	}
	r := record("Payroll recorded", res.Payment)
	r.Data = res
	r.Footer = fmt.Sprintf("%s hours at %s", strconv.FormatFloat(res.Hours, 'f', 2, 64), cli.Money(res.HourlyRate))
	return r, nil
}

func hoursCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Show the hours an employee worked in a period",
		RunE:  handler.Command(handler.HandlerFunc(runHours), parsePeriodFlags),
	}
	periodFlags(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

// workedHours is the JSON shape of the hours command
type workedHours struct {
	EmployeeID int     `json:"employee_id"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Hours      float64 `json:"hours"`
}

func runHours(ctx context.Context, args *handler.Arguments) (any, error) {
	from, to, _, err := readPeriod(args)
	if err != nil {
		return nil, err
	}
	employeeID := args.GetInt("employee", 0)
	h, err := args.App.StaffService.WorkedHours(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	return &cli.Record{
		ID:    employeeID,
		Title: "Worked hours",
		Fields: []cli.Field{
			{Label: "Employee", Value: strconv.Itoa(employeeID)},
			{Label: "Period", Value: cli.Date(from) + " .. " + cli.Date(to)},
			{Label: "Hours", Value: strconv.FormatFloat(h, 'f', 2, 64)},
		},
		Data: workedHours{EmployeeID: employeeID, From: cli.Date(from), To: cli.Date(to), Hours: h},
	}, nil
}
