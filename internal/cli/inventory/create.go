package inventory

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	inventoryservice "github.com/thenoetrevino/cafe/internal/services/inventory"
)

// CreateCmd returns the inventory create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an inventory item",
		Long: `Add a stocked ingredient or consumable.

Examples:
  # 2 kg of beans at 0.03 per gram, reorder below 500 g
  cafe inventory create --name="Espresso beans" --unit=1 --amount=2000 --min=500 --cost=0.03

  # Linked to a supplier, JSON output for agents
  cafe inventory create --name="Oat milk" --unit=3 --supplier=2 --json
`,
		RunE: handler.Command(&createHandler{}, parseCreateFlags),
	}

	// Required flags
	cmd.Flags().String("name", "", "Item name (required)")
	cmd.Flags().Int("unit", 0, "Unit ID (required, see 'cafe unit list')")
	handler.MarkRequired(cmd, "name", "unit")

	cmd.Flags().Float64("amount", 0, "Amount in stock")
	cmd.Flags().Float64("min", 0, "Reorder level")
	cmd.Flags().Float64("cost", 0, "Cost of one unit")
	cmd.Flags().Int("supplier", 0, "Supplier ID")

	// Agent-friendly flags
	handler.AddOutputFlags(cmd)

	return cmd
}

// createHandler implements handler.Handler for inventory item creation
type createHandler struct{}

// Execute implements the Handler interface
func (h *createHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	item, err := args.App.InventoryService.CreateItem(ctx, inventoryservice.CreateItemRequest{
		Name:       args.GetString("name", ""),
		UnitID:     args.GetInt("unit", 0),
		Amount:     args.GetFloat64("amount", 0),
		MinAmount:  args.GetFloat64("min", 0),
		UnitCost:   args.GetFloat64("cost", 0),
		SupplierID: args.IntPtr("supplier"),
	})
	if err != nil {
		return nil, err
	}
	return record("Inventory item created", item), nil
}

func parseCreateFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	return handler.Checks(
		func() error { _, err := p.ParseString("name"); return err },
		func() error { _, err := p.ParseID("unit"); return err },
	)
}
