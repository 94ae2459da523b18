package inventory

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
)

// RestockCmd returns the inventory restock subcommand
func RestockCmd() *cobra.Command {
	return stockCmd("restock", "Add stock to an item", func(ctx context.Context, args *handler.Arguments) (any, error) {
		item, err := args.App.InventoryService.Restock(ctx, args.GetInt("id", 0), args.GetFloat64("quantity", 0))
		if err != nil {
			return nil, err
		}
		return record("Restocked "+item.Name, item), nil
	})
}

// ConsumeCmd returns the inventory consume subcommand
func ConsumeCmd() *cobra.Command {
	return stockCmd("consume", "Take stock out of an item (fails if not enough is left)", func(ctx context.Context, args *handler.Arguments) (any, error) {
		item, err := args.App.InventoryService.Consume(ctx, args.GetInt("id", 0), args.GetFloat64("quantity", 0))
		if err != nil {
			return nil, err
		}
		return record("Consumed "+item.Name, item), nil
	})
}

func stockCmd(use, short string, run handler.HandlerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: handler.Command(run, func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseID("id")
			return err
		}),
	}

	cmd.Flags().Int("id", 0, "Inventory item ID (required)")
	cmd.Flags().Float64("quantity", 0, "Quantity in the item's unit (required)")
	for _, name := range []string{"id", "quantity"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	handler.AddOutputFlags(cmd)
	return cmd
}
