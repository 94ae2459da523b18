// Package report builds markdown cost reports and renders them for the terminal.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/thenoetrevino/cafe/internal/models"
)

// CostReport gathers what `cost report` prints for a period
type CostReport struct {
	Currency string
	Period   *models.PeriodCosts
	Expenses []*models.Expense
	Menu     []*models.MenuItemCost
}

// Markdown renders the report as GitHub-flavoured markdown
func (r *CostReport) Markdown() string {
	var b strings.Builder
	p := r.Period

	fmt.Fprintf(&b, "# Costs %s to %s\n\n",
		p.From.Format(models.DateLayout), p.To.Format(models.DateLayout))

	b.WriteString("| Source | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Supplies received | %s |\n", r.money(p.Supplies))
	fmt.Fprintf(&b, "| Payroll | %s |\n", r.money(p.Payroll))
	fmt.Fprintf(&b, "| Expenses | %s |\n", r.money(p.Expenses))
	fmt.Fprintf(&b, "| **Total** | **%s** |\n\n", r.money(p.Total))

	if len(r.Expenses) > 0 {
		b.WriteString("## Expenses by category\n\n| Category | Count | Amount |\n|---|---:|---:|\n")
		for _, row := range byCategory(r.Expenses) {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", row.category, row.count, r.money(row.amount))
		}
		b.WriteString("\n")
	}

	if len(r.Menu) > 0 {
		menu := make([]*models.MenuItemCost, len(r.Menu))
		copy(menu, r.Menu)
		// thinnest margins first
		sort.SliceStable(menu, func(i, j int) bool {
			return menu[i].MarginPercent < menu[j].MarginPercent
		})

		b.WriteString("## Menu margins\n\n| Item | Price | Ingredients | Margin | Margin % |\n|---|---:|---:|---:|---:|\n")
		for _, c := range menu {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.1f%% |\n",
				escape(c.Item.Name), r.money(c.Item.Price), r.money(c.IngredientCost), r.money(c.Margin), c.MarginPercent)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (r *CostReport) money(v float64) string {
	return fmt.Sprintf("%.2f %s", v, r.Currency)
}

type categoryRow struct {
	category string
	count    int
	amount   float64
}

// byCategory totals expenses in models.ExpenseCategories order, skipping empty categories
func byCategory(expenses []*models.Expense) []categoryRow {
	totals := make(map[string]*categoryRow)
	for _, e := range expenses {
		row, ok := totals[e.Category]
		if !ok {
			row = &categoryRow{category: e.Category}
			totals[e.Category] = row
		}
		row.count++
		row.amount += e.Amount
	}

	rows := make([]categoryRow, 0, len(totals))
	for _, cat := range models.ExpenseCategories {
		if row, ok := totals[cat]; ok {
			row.amount = math.Round(row.amount*100) / 100
			rows = append(rows, *row)
		}
	}
	return rows
}

// escape keeps pipes in names from breaking table cells
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var rendererCache sync.Map // map[string]*glamour.TermRenderer

// getRenderer returns a cached renderer for a style and width.
// An empty style picks one from the terminal background.
func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := fmt.Sprintf("%s/%d", style, width)
	if cached, ok := rendererCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(key, renderer)
	return renderer, nil
}

// Render formats markdown for a terminal of the given width
func Render(markdown, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
