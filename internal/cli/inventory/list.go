package inventory

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
)

// ListCmd returns the inventory list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		Long: `List inventory items by name.

Examples:
  cafe inventory list
  cafe inventory list --low      # only items below their reorder level
  cafe inventory list --quiet    # one ID per line
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runList)),
	}
	cmd.Flags().Bool("low", false, "Only items below their reorder level")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	svc := args.App.InventoryService
	if args.GetBool("low") {
		items, err := svc.ListLowStock(ctx)
		if err != nil {
			return nil, err
		}
		l := listing("Low stock", items)
		l.Empty = "Nothing is below its reorder level"
		return l, nil
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return listing("Inventory", items), nil
}

// GetCmd returns the inventory get subcommand
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one inventory item",
		RunE: handler.Command(handler.HandlerFunc(runGet), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseID("id")
			return err
		}),
	}
	cmd.Flags().Int("id", 0, "Inventory item ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runGet(ctx context.Context, args *handler.Arguments) (any, error) {
	item, err := args.App.InventoryService.GetItem(ctx, args.GetInt("id", 0))
	if err != nil {
		return nil, err
	}
	return record(item.Name, item), nil
}
