// Package order holds all cli commands related to supply orders
// e.g., cafe order ...
package order

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
)

var statuses = []string{models.OrderStatusPending, models.OrderStatusReceived, models.OrderStatusCancelled}

// OrderCmd returns the supply order parent command
func OrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Manage supply orders",
		Long: `Supply orders track stock bought from suppliers. An order starts pending,
collects lines, and is then either received (its lines are added to
inventory) or cancelled.`,
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(addLineCmd())
	cmd.AddCommand(removeLineCmd())
	cmd.AddCommand(receiveCmd())
	cmd.AddCommand(cancelCmd())
	cmd.AddCommand(deleteCmd())

	return cmd
}

func statusText(status string) string {
	if status == models.OrderStatusCancelled {
		return cli.Warn(status)
	}
	return status
}

func record(title string, o *models.SupplyOrder) *cli.Record {
	r := &cli.Record{
		ID:    o.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(o.ID)},
			{Label: "Supplier", Value: o.SupplierName},
			{Label: "Status", Value: statusText(o.Status)},
			{Label: "Ordered", Value: cli.Date(o.OrderedOn)},
			{Label: "Expected", Value: cli.DatePtr(o.ExpectedOn)},
			{Label: "Received", Value: cli.DatePtr(o.ReceivedOn)},
			{Label: "Total", Value: cli.Money(o.Total)},
		},
		Data: o,
	}
	for _, line := range o.Items {
		r.Fields = append(r.Fields, cli.Field{
			Label: fmt.Sprintf("  #%d", line.InventoryID),
			Value: fmt.Sprintf("%s  %s x %s = %s",
				line.InventoryName, cli.Quantity(line.Quantity), cli.Money(line.UnitPrice), cli.Money(line.LineTotal())),
		})
	}
	if len(o.Items) == 0 {
		r.Footer = "No lines yet, add some with 'cafe order add-line'"
	}
	return r
}

func listing(orders []*models.SupplyOrder) *cli.Listing {
	l := &cli.Listing{
		Title:   "Supply orders",
		Headers: []string{"ID", "Supplier", "Status", "Ordered", "Expected", "Received", "Total"},
		Empty:   "No supply orders found",
		Data:    orders,
	}
	for _, o := range orders {
		l.IDs = append(l.IDs, o.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(o.ID), o.SupplierName, statusText(o.Status),
			cli.Date(o.OrderedOn), cli.DatePtr(o.ExpectedOn), cli.DatePtr(o.ReceivedOn), cli.Money(o.Total),
		})
	}
	return l
}

func requireID(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("id")
	return err
}

func idCommand(use, short string, h handler.HandlerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE:  handler.Command(h, requireID),
	}
	cmd.Flags().Int("id", 0, "Supply order ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}
