package inventory

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
)

// DeleteCmd returns the inventory delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an inventory item",
		Long: `Delete an inventory item. Items used by a recipe or a supply order
cannot be deleted.`,
		RunE: handler.Command(handler.HandlerFunc(runDelete), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseID("id")
			return err
		}),
	}
	cmd.Flags().Int("id", 0, "Inventory item ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	id := args.GetInt("id", 0)
	if err := args.App.InventoryService.DeleteItem(ctx, id); err != nil {
		return nil, err
	}
	return cli.Deleted("inventory item", id), nil
}
