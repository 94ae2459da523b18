// Package expense holds all cli commands related to overhead expenses
// e.g., cafe expense ...
package expense

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	costservice "github.com/thenoetrevino/cafe/internal/services/costs"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// ExpenseCmd returns the expense parent command
func ExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Record overhead expenses",
		Long: `Expenses are costs that are neither stock nor payroll, such as rent or repairs.
Categories: ` + strings.Join(models.ExpenseCategories, ", "),
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(deleteCmd())

	return cmd
}

func record(title string, e *models.Expense) *cli.Record {
	return &cli.Record{
		ID:    e.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(e.ID)},
			{Label: "Category", Value: e.Category},
			{Label: "Description", Value: cli.OrDash(e.Description)},
			{Label: "Amount", Value: cli.Money(e.Amount)},
			{Label: "Date", Value: cli.Date(e.IncurredOn)},
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
		Short: "Record an expense",
		Long: `Record an expense. The date defaults to today.

Examples:
  cafe expense create --category=rent --amount=1800 --on=2024-03-01
  cafe expense create --category=maintenance --amount=85 --description="Grinder burrs"
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { return p.ParseOneOf("category", models.ExpenseCategories) },
				func() error { return p.ParseDate("on") },
			)
		}),
	}
	cmd.Flags().String("category", "", "Expense category (required): "+strings.Join(models.ExpenseCategories, ", "))
	cmd.Flags().Float64("amount", 0, "Amount spent (required)")
	cmd.Flags().String("description", "", "What the money was spent on")
	cmd.Flags().String("on", "", "Date, YYYY-MM-DD (default today)")
	handler.MarkRequired(cmd, "category", "amount")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	on, err := args.Date("on")
	if err != nil {
		return nil, err
	}
	e, err := args.App.CostService.CreateExpense(ctx, costservice.CreateExpenseRequest{
		Category:    args.GetString("category", ""),
		Description: args.GetString("description", ""),
		Amount:      args.GetFloat64("amount", 0),
		IncurredOn:  on,
	})
	if err != nil {
		return nil, err
	}
	return record("Expense recorded", e), nil
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one expense",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			e, err := args.App.CostService.GetExpense(ctx, args.GetInt("id", 0))
			if err != nil {
				return nil, err
			}
			return record(fmt.Sprintf("Expense %d", e.ID), e), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Expense ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `List expenses by date. --from and --to are inclusive; either may be left out.

Examples:
  cafe expense list --from=2024-03-01 --to=2024-03-31
`,
		RunE: handler.Command(handler.HandlerFunc(runList), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { return p.ParseDate("from") },
				func() error { return p.ParseDate("to") },
			)
		}),
	}
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
	expenses, err := args.App.CostService.ListExpenses(ctx, from, to)
	if err != nil {
		return nil, err
	}

	l := &cli.Listing{
		Title:   "Expenses",
		Headers: []string{"ID", "Date", "Category", "Description", "Amount"},
		Empty:   "No expenses found",
		Data:    expenses,
	}
	var total float64
	for _, e := range expenses {
		l.IDs = append(l.IDs, e.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(e.ID), cli.Date(e.IncurredOn), e.Category, cli.OrDash(e.Description), cli.Money(e.Amount),
		})
		total += e.Amount
	}
	if len(expenses) > 0 {
		l.Footer = "Total: " + cli.Money(validation.Money(total))
	}
	return l, nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an expense",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id := args.GetInt("id", 0)
			if err := args.App.CostService.DeleteExpense(ctx, id); err != nil {
				return nil, err
			}
			return cli.Deleted("expense", id), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Expense ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}
