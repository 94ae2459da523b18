// Package menu holds all cli commands related to menu items and categories
// e.g., cafe menu ...
package menu

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/models"
)

// MenuCmd returns the menu parent command
func MenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage menu items and categories",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(GetCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(CategoryCmd())

	return cmd
}

func availability(item *models.MenuItem) string {
	if item.Available {
		return "yes"
	}
	return cli.Warn("no")
}

func record(title string, item *models.MenuItem) *cli.Record {
	return &cli.Record{
		ID:    item.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(item.ID)},
			{Label: "Name", Value: item.Name},
			{Label: "Category", Value: item.CategoryName},
			{Label: "Price", Value: cli.Money(item.Price)},
			{Label: "Available", Value: availability(item)},
		},
		Data: item,
	}
}

func listing(items []*models.MenuItem) *cli.Listing {
	l := &cli.Listing{
		Title:   "Menu",
		Headers: []string{"ID", "Name", "Category", "Price", "Available"},
		Empty:   "No menu items found",
		Data:    items,
	}
	for _, item := range items {
		l.IDs = append(l.IDs, item.ID)
		l.Rows = append(l.Rows, []string{
			strconv.Itoa(item.ID), item.Name, item.CategoryName, cli.Money(item.Price), availability(item),
		})
	}
	return l
}
