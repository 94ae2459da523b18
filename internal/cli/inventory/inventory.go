// Package inventory holds all cli commands related to stocked ingredients
// e.g., cafe inventory ...
package inventory

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/models"
)

// InventoryCmd returns the inventory parent command
func InventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Manage stocked ingredients",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(GetCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(RestockCmd())
	cmd.AddCommand(ConsumeCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func supplierText(item *models.InventoryItem) string {
	if item.SupplierID == nil {
		return "-"
	}
	return strconv.Itoa(*item.SupplierID)
}

func amountText(item *models.InventoryItem) string {
	s := cli.Quantity(item.Amount) + " " + item.UnitName
	if item.LowStock() {
		return cli.Warn(s + " (low)")
	}
	return s
}

// record renders one item as a card
func record(title string, item *models.InventoryItem) *cli.Record {
	return &cli.Record{
		ID:    item.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(item.ID)},
			{Label: "Name", Value: item.Name},
			{Label: "Amount", Value: amountText(item)},
			{Label: "Reorder at", Value: cli.Quantity(item.MinAmount) + " " + item.UnitName},
			{Label: "Unit cost", Value: cli.Money(item.UnitCost)},
			{Label: "Supplier", Value: supplierText(item)},
			{Label: "Updated", Value: item.UpdatedAt.Local().Format("2006-01-02 15:04")},
		},
		Data: item,
	}
}

// listing renders items as a table
func listing(title string, items []*models.InventoryItem) *cli.Listing {
	l := &cli.Listing{
		Title:   title,
		Headers: []string{"ID", "Name", "Amount", "Reorder at", "Unit cost", "Supplier"},
		Empty:   "No inventory items found",
		Data:    items,
	}
	for _, item := range items {
		l.IDs = append(l.IDs, item.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(item.ID),
			item.Name,
			amountText(item),
			cli.Quantity(item.MinAmount),
			cli.Money(item.UnitCost),
			supplierText(item),
		})
	}
	return l
}
