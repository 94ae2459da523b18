// Package cost holds the cli commands that estimate costs and margins
// e.g., cafe cost ...
package cost

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/report"
)

// CostCmd returns the cost parent command
func CostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cost",
		Aliases: []string{"costs"},
		Short:   "Estimate ingredient costs, margins and period spending",
		Long: `Cost estimates use current inventory unit costs for menu items, and the
recorded supply orders, payments and expenses for periods.`,
	}

	cmd.AddCommand(itemCmd())
	cmd.AddCommand(menuCmd())
	cmd.AddCommand(periodCmd())
	cmd.AddCommand(reportCmd())

	return cmd
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func margin(c *models.MenuItemCost) string {
	s := cli.Money(c.Margin)
	if c.Margin < 0 {
		return cli.Warn(s)
	}
	return s
}

func itemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Ingredient cost and margin of one menu item",
		Long: `Show what one serving of a menu item costs in ingredients.

Examples:
  cafe cost item --menu=3
`,
		RunE: handler.Command(handler.HandlerFunc(runItem), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseID("menu")
			return err
		}),
	}
	cmd.Flags().Int("menu", 0, "Menu item ID (required)")
	handler.MarkRequired(cmd, "menu")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runItem(ctx context.Context, args *handler.Arguments) (any, error) {
	c, err := args.App.CostService.EstimateMenuItem(ctx, args.GetInt("menu", 0))
	if err != nil {
		return nil, err
	}
	r := &cli.Record{
		ID:    c.Item.ID,
		Title: c.Item.Name,
		Fields: []cli.Field{
			{Label: "Price", Value: cli.Money(c.Item.Price)},
			{Label: "Ingredients", Value: cli.Money(c.IngredientCost)},
			{Label: "Margin", Value: margin(c)},
			{Label: "Margin %", Value: percent(c.MarginPercent)},
		},
		Data: c,
	}
	for _, line := range c.Lines {
		r.Fields = append(r.Fields, cli.Field{
			Label: "  " + line.InventoryName,
			Value: fmt.Sprintf("%s %s = %s", cli.Quantity(line.Amount), line.UnitName, cli.Money(line.Cost())),
		})
	}
	if len(c.Lines) == 0 {
		r.Footer = cli.Warn("No recipe, so the ingredient cost is unknown")
	}
	return r, nil
}

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Ingredient cost and margin of every menu item",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runMenu)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runMenu(ctx context.Context, args *handler.Arguments) (any, error) {
	costs, err := args.App.CostService.EstimateMenu(ctx)
	if err != nil {
		return nil, err
	}
	l := &cli.Listing{
		Title:   "Menu margins",
		Headers: []string{"ID", "Item", "Price", "Ingredients", "Margin", "Margin %"},
		Empty:   "No menu items found",
		Data:    costs,
	}
	for _, c := range costs {
		l.IDs = append(l.IDs, c.Item.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(c.Item.ID), c.Item.Name, cli.Money(c.Item.Price),
			cli.Money(c.IngredientCost), margin(c), percent(c.MarginPercent),
		})
	}
	return l, nil
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "First day, YYYY-MM-DD (required)")
	cmd.Flags().String("to", "", "Last day, YYYY-MM-DD (required)")
	handler.MarkRequired(cmd, "from", "to")
}

func parseRangeFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	return handler.Checks(
		func() error { return p.ParseDate("from") },
		func() error { return p.ParseDate("to") },
	)
}

func estimatePeriod(ctx context.Context, args *handler.Arguments) (*models.PeriodCosts, error) {
	from, err := args.Date("from")
	if err != nil {
		return nil, err
	}
	to, err := args.Date("to")
	if err != nil {
		return nil, err
	}
	return args.App.CostService.EstimatePeriod(ctx, from, to)
}

func periodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Total spending over a period",
		Long: `Sum received supply orders, payments and expenses dated within the period.

Examples:
  cafe cost period --from=2024-03-01 --to=2024-03-31
`,
		RunE: handler.Command(handler.HandlerFunc(runPeriod), parseRangeFlags),
	}
	addRangeFlags(cmd)
	handler.AddOutputFlags(cmd)
	return cmd
}

func runPeriod(ctx context.Context, args *handler.Arguments) (any, error) {
	p, err := estimatePeriod(ctx, args)
	if err != nil {
		return nil, err
	}
	return &cli.Record{
		Title: fmt.Sprintf("Costs %s to %s", cli.Date(p.From), cli.Date(p.To)),
		Fields: []cli.Field{
			{Label: "Supplies", Value: cli.Money(p.Supplies)},
			{Label: "Payroll", Value: cli.Money(p.Payroll)},
			{Label: "Expenses", Value: cli.Money(p.Expenses)},
			{Label: "Total", Value: cli.Money(p.Total)},
		},
		Footer: "Amounts in " + args.Config.Currency,
		Data:   p,
	}, nil
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a cost report for a period",
		Long: `Render period spending, expenses by category and menu margins as a
formatted report. --json prints the underlying figures and the markdown.

Examples:
  cafe cost report --from=2024-03-01 --to=2024-03-31
  cafe cost report --from=2024-03-01 --to=2024-03-31 --style=notty > march.txt
`,
		RunE: handler.Command(handler.HandlerFunc(runReport), parseRangeFlags),
	}
	addRangeFlags(cmd)
	cmd.Flags().Int("width", 100, "Wrap width of the rendered report")
	cmd.Flags().String("style", "", "Glamour style (dark, light, notty, ...); default follows the terminal")
	handler.AddOutputFlags(cmd)
	return cmd
}

// renderedReport prints the glamour output for humans and the figures as JSON
type renderedReport struct {
	report *report.CostReport
	style  string
	width  int
}

func (r *renderedReport) Pretty() string {
	out, err := report.Render(r.report.Markdown(), r.style, r.width)
	if err != nil {
		// fall back to the raw markdown
		return r.report.Markdown()
	}
	return out
}

func (r *renderedReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"currency": r.report.Currency,
		"period":   r.report.Period,
		"expenses": r.report.Expenses,
		"menu":     r.report.Menu,
		"markdown": r.report.Markdown(),
	})
}

func runReport(ctx context.Context, args *handler.Arguments) (any, error) {
	period, err := estimatePeriod(ctx, args)
	if err != nil {
		return nil, err
	}
	svc := args.App.CostService
	expenses, err := svc.ListExpenses(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}
	menu, err := svc.EstimateMenu(ctx)
	if err != nil {
		return nil, err
	}

	return &renderedReport{
		report: &report.CostReport{
			Currency: args.Config.Currency,
			Period:   period,
			Expenses: expenses,
			Menu:     menu,
		},
		style: args.GetString("style", ""),
		width: args.GetInt("width", 100),
	}, nil
}
