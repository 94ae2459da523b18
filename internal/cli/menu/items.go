package menu

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	menuservice "github.com/thenoetrevino/cafe/internal/services/menu"
)

func requireID(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("id")
	return err
}

// CreateCmd returns the menu create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a menu item",
		Long: `Add something the café sells. Items are available unless --unavailable is set.

Examples:
  cafe menu create --name="Flat white" --category=1 --price=3.8
  ITEM_ID=$(cafe menu create --name="Chai" --category=2 --price=3.2 --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseString("name"); return err },
				func() error { _, err := p.ParseID("category"); return err },
			)
		}),
	}

	cmd.Flags().String("name", "", "Item name (required)")
	cmd.Flags().Int("category", 0, "Category ID (required, see 'cafe menu category list')")
	cmd.Flags().Float64("price", 0, "Sale price")
	cmd.Flags().Bool("unavailable", false, "Create the item as not currently sold")
	handler.MarkRequired(cmd, "name", "category")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	item, err := args.App.MenuService.CreateItem(ctx, menuservice.CreateItemRequest{
		Name:       args.GetString("name", ""),
		CategoryID: args.GetInt("category", 0),
		Price:      args.GetFloat64("price", 0),
		Available:  !args.GetBool("unavailable"),
	})
	if err != nil {
		return nil, err
	}
	return record("Menu item created", item), nil
}

// GetCmd returns the menu get subcommand
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one menu item",
		RunE:  handler.Command(handler.HandlerFunc(runGet), requireID),
	}
	cmd.Flags().Int("id", 0, "Menu item ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runGet(ctx context.Context, args *handler.Arguments) (any, error) {
	item, err := args.App.MenuService.GetItem(ctx, args.GetInt("id", 0))
	if err != nil {
		return nil, err
	}
	return record(item.Name, item), nil
}

// ListCmd returns the menu list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List menu items",
		Long: `List menu items, optionally for one category.

Examples:
  cafe menu list
  cafe menu list --category=1 --json
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runList)),
	}
	cmd.Flags().Int("category", 0, "Only items in this category")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	items, err := args.App.MenuService.ListItems(ctx, args.IntPtr("category"))
	if err != nil {
		return nil, err
	}
	return listing(items), nil
}

// UpdateCmd returns the menu update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a menu item",
		Long: `Update fields of a menu item. Only the flags you pass change.

Examples:
  cafe menu update --id=4 --price=4.1
  cafe menu update --id=4 --available=false
`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("id"); return err },
				func() error { return p.RequireAny("name", "category", "price", "available") },
			)
		}),
	}

	cmd.Flags().Int("id", 0, "Menu item ID (required)")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Int("category", 0, "New category ID")
	cmd.Flags().Float64("price", 0, "New price")
	cmd.Flags().Bool("available", true, "Whether the item is currently sold")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	item, err := args.App.MenuService.UpdateItem(ctx, menuservice.UpdateItemRequest{
		ID:         args.GetInt("id", 0),
		Name:       args.StringPtr("name"),
		CategoryID: args.IntPtr("category"),
		Price:      args.Float64Ptr("price"),
		Available:  args.BoolPtr("available"),
	})
	if err != nil {
		return nil, err
	}
	return record("Menu item updated", item), nil
}

// DeleteCmd returns the menu delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a menu item and its recipe",
		RunE:  handler.Command(handler.HandlerFunc(runDelete), requireID),
	}
	cmd.Flags().Int("id", 0, "Menu item ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	id := args.GetInt("id", 0)
	if err := args.App.MenuService.DeleteItem(ctx, id); err != nil {
		return nil, err
	}
	return cli.Deleted("menu item", id), nil
}
