package order

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	supplierservice "github.com/thenoetrevino/cafe/internal/services/supplier"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a supply order",
		Long: `Open a pending supply order with a supplier. The order date defaults to today.

Examples:
  cafe order create --supplier=1 --expected=2024-03-08
  ORDER_ID=$(cafe order create --supplier=1 --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("supplier"); return err },
				func() error { return p.ParseDate("ordered") },
				func() error { return p.ParseDate("expected") },
			)
		}),
	}
	cmd.Flags().Int("supplier", 0, "Supplier ID (required)")
	cmd.Flags().String("ordered", "", "Order date, YYYY-MM-DD (default today)")
	cmd.Flags().String("expected", "", "Expected delivery date, YYYY-MM-DD")
	handler.MarkRequired(cmd, "supplier")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	ordered, err := args.Date("ordered")
	if err != nil {
		return nil, err
	}
	expected, err := args.DatePtr("expected")
	if err != nil {
		return nil, err
	}
	o, err := args.App.SupplierService.CreateOrder(ctx, supplierservice.CreateOrderRequest{
		SupplierID: args.GetInt("supplier", 0),
		OrderedOn:  ordered,
		ExpectedOn: expected,
	})
	if err != nil {
		return nil, err
	}
	return record("Supply order created", o), nil
}

func getCmd() *cobra.Command {
	return idCommand("get", "Show a supply order with its lines", func(ctx context.Context, args *handler.Arguments) (any, error) {
		o, err := args.App.SupplierService.GetOrder(ctx, args.GetInt("id", 0))
		if err != nil {
			return nil, err
		}
		return record("Supply order", o), nil
	})
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supply orders",
		Long: `List supply orders, newest first.

Examples:
  cafe order list
  cafe order list --status=pending --quiet
`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			status := strings.ToLower(strings.TrimSpace(args.GetString("status", "")))
			orders, err := args.App.SupplierService.ListOrders(ctx, status)
			if err != nil {
				return nil, err
			}
			return listing(orders), nil
		}), func(cmd *cobra.Command) error {
			return handler.NewFlagParser(cmd).ParseOneOf("status", statuses)
		}),
	}
	cmd.Flags().String("status", "", "Only orders with this status ("+strings.Join(statuses, ", ")+")")
	handler.AddOutputFlags(cmd)
	return cmd
}

func lineFlags(cmd *cobra.Command) error {
	p := handler.NewFlagParser(cmd)
	return handler.Checks(
		func() error { _, err := p.ParseID("id"); return err },
		func() error { _, err := p.ParseID("inventory"); return err },
	)
}

func addLineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-line",
		Short: "Add a line to a pending order",
		Long: `Add an inventory item to a pending order.

Examples:
  cafe order add-line --id=4 --inventory=1 --quantity=5000 --price=0.028
`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			o, err := args.App.SupplierService.AddOrderLine(ctx, supplierservice.OrderLineRequest{
				OrderID:     args.GetInt("id", 0),
				InventoryID: args.GetInt("inventory", 0),
				Quantity:    args.GetFloat64("quantity", 0),
				UnitPrice:   args.GetFloat64("price", 0),
			})
			if err != nil {
				return nil, err
			}
			return record("Line added", o), nil
		}), lineFlags),
	}
	cmd.Flags().Int("id", 0, "Supply order ID (required)")
	cmd.Flags().Int("inventory", 0, "Inventory item ID (required)")
	cmd.Flags().Float64("quantity", 0, "Quantity ordered (required)")
	cmd.Flags().Float64("price", 0, "Price of one unit")
	handler.MarkRequired(cmd, "id", "inventory", "quantity")
	handler.AddOutputFlags(cmd)
	return cmd
}

func removeLineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-line",
		Short: "Remove a line from a pending order",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			o, err := args.App.SupplierService.RemoveOrderLine(ctx, args.GetInt("id", 0), args.GetInt("inventory", 0))
			if err != nil {
				return nil, err
			}
			return record("Line removed", o), nil
		}), lineFlags),
	}
	cmd.Flags().Int("id", 0, "Supply order ID (required)")
	cmd.Flags().Int("inventory", 0, "Inventory item ID (required)")
	handler.MarkRequired(cmd, "id", "inventory")
	handler.AddOutputFlags(cmd)
	return cmd
}

func receiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Receive a pending order into stock",
		Long: `Mark a pending order received and add every line to inventory. The whole
booking happens in one step; if any line fails nothing changes.

Examples:
  cafe order receive --id=4
  cafe order receive --id=4 --on=2024-03-07
`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			on, err := args.Date("on")
			if err != nil {
				return nil, err
			}
			o, err := args.App.SupplierService.ReceiveOrder(ctx, args.GetInt("id", 0), on)
			if err != nil {
				return nil, err
			}
			return record("Supply order received", o), nil
		}), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("id"); return err },
				func() error { return p.ParseDate("on") },
			)
		}),
	}
	cmd.Flags().Int("id", 0, "Supply order ID (required)")
	cmd.Flags().String("on", "", "Delivery date, YYYY-MM-DD (default today)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func cancelCmd() *cobra.Command {
	return idCommand("cancel", "Cancel a pending order", func(ctx context.Context, args *handler.Arguments) (any, error) {
		o, err := args.App.SupplierService.CancelOrder(ctx, args.GetInt("id", 0))
		if err != nil {
			return nil, err
		}
		return record("Supply order cancelled", o), nil
	})
}

func deleteCmd() *cobra.Command {
	return idCommand("delete", "Delete an order that was never received", func(ctx context.Context, args *handler.Arguments) (any, error) {
		id := args.GetInt("id", 0)
		if err := args.App.SupplierService.DeleteOrder(ctx, id); err != nil {
			return nil, err
		}
		return cli.Deleted("supply order", id), nil
	})
}
