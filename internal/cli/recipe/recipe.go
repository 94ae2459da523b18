// Package recipe holds the cli commands that edit menu item recipes
// e.g., cafe recipe ...
package recipe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	menuservice "github.com/thenoetrevino/cafe/internal/services/menu"
)

// RecipeCmd returns the recipe parent command
func RecipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage the ingredients of menu items",
		Long: `A recipe lists how much of each inventory item one serving of a menu item uses.
Ingredient amounts are in the inventory item's unit.`,
	}

	cmd.AddCommand(showCmd())
	cmd.AddCommand(lineCmd("add", "Add an ingredient to a recipe", addLine))
	cmd.AddCommand(lineCmd("update", "Change the amount of an ingredient", updateLine))
	cmd.AddCommand(removeCmd())
	cmd.AddCommand(setCmd())

	return cmd
}

func listing(menuID int, lines []*models.RecipeItem) *cli.Listing {
	l := &cli.Listing{
		Title:   fmt.Sprintf("Recipe of menu item %d", menuID),
		Headers: []string{"Inventory ID", "Ingredient", "Amount", "Unit cost", "Cost"},
		Empty:   "Recipe is empty",
		Data:    lines,
	}
	var total float64
	for _, line := range lines {
		l.IDs = append(l.IDs, line.InventoryID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(line.InventoryID),
			line.InventoryName,
			cli.Quantity(line.Amount)+" "+line.UnitName,
			cli.Money(line.UnitCost),
			cli.Money(line.Cost()),
		})
		total += line.Cost()
	}
	if len(lines) > 0 {
		l.Footer = "Ingredient cost: " + cli.Money(total)
	}
	return l
}

func lineRecord(title string, line *models.RecipeItem) *cli.Record {
	return &cli.Record{
		ID:    line.InventoryID,
		Title: title,
		Fields: []cli.Field{
			{Label: "Menu item", Value: strconv.Itoa(line.MenuID)},
			{Label: "Ingredient", Value: line.InventoryName},
			{Label: "Amount", Value: cli.Quantity(line.Amount)+" "+line.UnitName},
			{Label: "Cost", Value: cli.Money(line.Cost())},
		},
		Data: line,
	}
}

func requireMenu(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("menu")
	return err
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the recipe of a menu item",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			menuID := args.GetInt("menu", 0)
			lines, err := args.App.MenuService.GetRecipe(ctx, menuID)
			if err != nil {
				return nil, err
			}
			return listing(menuID, lines), nil
		}), requireMenu),
	}
	cmd.Flags().Int("menu", 0, "Menu item ID (required)")
	handler.MarkRequired(cmd, "menu")
	handler.AddOutputFlags(cmd)
	return cmd
}

type lineFunc func(ctx context.Context, svc menuservice.Service, req menuservice.IngredientRequest) (*models.RecipeItem, string, error)

func addLine(ctx context.Context, svc menuservice.Service, req menuservice.IngredientRequest) (*models.RecipeItem, string, error) {
	line, err := svc.AddIngredient(ctx, req)
	return line, "Ingredient added", err
}

func updateLine(ctx context.Context, svc menuservice.Service, req menuservice.IngredientRequest) (*models.RecipeItem, string, error) {
	line, err := svc.UpdateIngredient(ctx, req)
	return line, "Ingredient updated", err
}

func lineCmd(use, short string, fn lineFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

Examples:
  cafe recipe ` + use + ` --menu=3 --inventory=1 --amount=18
`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			line, title, err := fn(ctx, args.App.MenuService, menuservice.IngredientRequest{
				MenuID:      args.GetInt("menu", 0),
				InventoryID: args.GetInt("inventory", 0),
				Amount:      args.GetFloat64("amount", 0),
			})
			if err != nil {
				return nil, err
			}
			return lineRecord(title, line), nil
		}), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("menu"); return err },
				func() error { _, err := p.ParseID("inventory"); return err },
			)
		}),
	}
	cmd.Flags().Int("menu", 0, "Menu item ID (required)")
	cmd.Flags().Int("inventory", 0, "Inventory item ID (required)")
	cmd.Flags().Float64("amount", 0, "Amount used per serving (required)")
	handler.MarkRequired(cmd, "menu", "inventory", "amount")
	handler.AddOutputFlags(cmd)
	return cmd
}

func removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an ingredient from a recipe",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			menuID, invID := args.GetInt("menu", 0), args.GetInt("inventory", 0)
			if err := args.App.MenuService.RemoveIngredient(ctx, menuID, invID); err != nil {
				return nil, err
			}
			return &cli.Message{
				ID:   invID,
				Text: fmt.Sprintf("Removed inventory item %d from menu item %d", invID, menuID),
			}, nil
		}), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("menu"); return err },
				func() error { _, err := p.ParseID("inventory"); return err },
			)
		}),
	}
	cmd.Flags().Int("menu", 0, "Menu item ID (required)")
	cmd.Flags().Int("inventory", 0, "Inventory item ID (required)")
	handler.MarkRequired(cmd, "menu", "inventory")
	handler.AddOutputFlags(cmd)
	return cmd
}

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the whole recipe of a menu item",
		Long: `Replace the whole recipe in one step. Pass --ingredient once per line as
INVENTORY_ID:AMOUNT. Passing no --ingredient clears the recipe.

Examples:
  cafe recipe set --menu=3 --ingredient=1:18 --ingredient=4:150
  cafe recipe set --menu=3                     # clear
`,
		RunE: handler.Command(handler.HandlerFunc(runSet), func(cmd *cobra.Command) error {
			if err := requireMenu(cmd); err != nil {
				return err
			}
			values, err := cmd.Flags().GetStringArray("ingredient")
			if err != nil {
				return err
			}
			_, err = parseIngredients(values)
			return err
		}),
	}
	cmd.Flags().Int("menu", 0, "Menu item ID (required)")
	cmd.Flags().StringArray("ingredient", nil, "Recipe line as INVENTORY_ID:AMOUNT (repeatable)")
	handler.MarkRequired(cmd, "menu")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runSet(ctx context.Context, args *handler.Arguments) (any, error) {
	lines, err := parseIngredients(args.GetStringArray("ingredient"))
	if err != nil {
		return nil, err
	}
	menuID := args.GetInt("menu", 0)
	recipe, err := args.App.MenuService.SetRecipe(ctx, menuID, lines)
	if err != nil {
		return nil, err
	}
	return listing(menuID, recipe), nil
}

// parseIngredients turns "ID:AMOUNT" values into recipe lines
func parseIngredients(values []string) ([]menuservice.IngredientRequest, error) {
	lines := make([]menuservice.IngredientRequest, 0, len(values))
	for _, v := range values {
		idText, amountText, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("--ingredient %q must look like INVENTORY_ID:AMOUNT", v)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idText))
		if err != nil {
			return nil, fmt.Errorf("--ingredient %q: bad inventory ID", v)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil {
			return nil, fmt.Errorf("--ingredient %q: bad amount", v)
		}
		lines = append(lines, menuservice.IngredientRequest{InventoryID: id, Amount: amount})
	}
	return lines, nil
}
