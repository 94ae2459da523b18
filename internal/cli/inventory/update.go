package inventory

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	inventoryservice "github.com/thenoetrevino/cafe/internal/services/inventory"
)

// UpdateCmd returns the inventory update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an inventory item",
		Long: `Update fields of an inventory item. Only the flags you pass change.

Examples:
  cafe inventory update --id=3 --cost=0.028
  cafe inventory update --id=3 --no-supplier
`,
		RunE: handler.Command(&updateHandler{}, parseUpdateFlags),
	}

	cmd.Flags().Int("id", 0, "Inventory item ID (required)")
	handler.MarkRequired(cmd, "id")

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Int("unit", 0, "New unit ID")
	cmd.Flags().Float64("amount", 0, "Set the stock amount")
	cmd.Flags().Float64("min", 0, "New reorder level")
	cmd.Flags().Float64("cost", 0, "New unit cost")
	cmd.Flags().Int("supplier", 0, "Link to supplier ID")
	cmd.Flags().Bool("no-supplier", false, "Unlink the supplier")

	handler.AddOutputFlags(cmd)
	return cmd
}

// updateHandler implements handler.Handler for inventory item updates
type updateHandler struct{}

// Execute implements the Handler interface
func (h *updateHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	item, err := args.App.InventoryService.UpdateItem(ctx, inventoryservice.UpdateItemRequest{
		ID:            args.GetInt("id", 0),
		Name:          args.StringPtr("name"),
		UnitID:        args.IntPtr("unit"),
		Amount:        args.Float64Ptr("amount"),
		MinAmount:     args.Float64Ptr("min"),
		UnitCost:      args.Float64Ptr("cost"),
		SupplierID:    args.IntPtr("supplier"),
		ClearSupplier: args.GetBool("no-supplier"),
	})
	if err != nil {
		return nil, err
	}
	return record("Inventory item updated", item), nil
}

func parseUpdateFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	return handler.Checks(
		func() error { _, err := p.ParseID("id"); return err },
		func() error { return p.Exclusive("supplier", "no-supplier") },
		func() error {
			return p.RequireAny("name", "unit", "amount", "min", "cost", "supplier", "no-supplier")
		},
	)
}
