// Package supplier holds all cli commands related to suppliers
// e.g., cafe supplier ...
package supplier

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
	"github.com/thenoetrevino/cafe/internal/models"
	supplierservice "github.com/thenoetrevino/cafe/internal/services/supplier"
)

// SupplierCmd returns the supplier parent command
func SupplierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "supplier",
		Aliases: []string{"suppliers"},
		Short:   "Manage suppliers",
	}

	cmd.AddCommand(createCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(updateCmd())
	cmd.AddCommand(deleteCmd())

	return cmd
}

func record(title string, s *models.Supplier) *cli.Record {
	return &cli.Record{
		ID:    s.ID,
		Title: title,
		Fields: []cli.Field{
			{Label: "ID", Value: strconv.Itoa(s.ID)},
			{Label: "Name", Value: s.Name},
			{Label: "Phone", Value: cli.OrDash(s.Phone)},
			{Label: "Email", Value: cli.OrDash(s.Email)},
			{Label: "Address", Value: cli.OrDash(s.Address)},
			{Label: "Since", Value: cli.Date(s.CreatedAt)},
		},
		Data: s,
	}
}

func requireID(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseID("id")
	return err
}

func addContactFlags(cmd *cobra.Command) {
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("address", "", "Postal address")
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a supplier",
		Long: `Add a supplier. Contact details are optional.

Examples:
  cafe supplier create --name="Bean Co" --email=orders@beanco.example
  SUPPLIER_ID=$(cafe supplier create --name="Dairy Farm" --phone="+1 555 0100" --quiet)
`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("name")
			return err
		}),
	}
	cmd.Flags().String("name", "", "Supplier name (required)")
	addContactFlags(cmd)
	handler.MarkRequired(cmd, "name")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := args.App.SupplierService.CreateSupplier(ctx, supplierservice.CreateSupplierRequest{
		Name:    args.GetString("name", ""),
		Phone:   args.GetString("phone", ""),
		Email:   args.GetString("email", ""),
		Address: args.GetString("address", ""),
	})
	if err != nil {
		return nil, err
	}
	return record("Supplier created", s), nil
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one supplier",
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			s, err := args.App.SupplierService.GetSupplier(ctx, args.GetInt("id", 0))
			if err != nil {
				return nil, err
			}
			return record(s.Name, s), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Supplier ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	suppliers, err := args.App.SupplierService.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	l := &cli.Listing{
		Title:   "Suppliers",
		Headers: []string{"ID", "Name", "Phone", "Email"},
		Empty:   "No suppliers found",
		Data:    suppliers,
	}
	for _, s := range suppliers {
		l.IDs = append(l.IDs, s.ID)
		l.Rows = append(l.Rows, []string{strconv.Itoa(s.ID), s.Name, cli.OrDash(s.Phone), cli.OrDash(s.Email)})
	}
	return l, nil
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a supplier",
		Long: `Update a supplier. Only the flags you pass change; pass an empty value
to clear a contact field.

Examples:
  cafe supplier update --id=2 --phone="+1 555 0199"
  cafe supplier update --id=2 --email=""
`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), func(cmd *cobra.Command) error {
			p := handler.NewFlagParser(cmd)
			return handler.Checks(
				func() error { _, err := p.ParseID("id"); return err },
				func() error { return p.RequireAny("name", "phone", "email", "address") },
			)
		}),
	}
	cmd.Flags().Int("id", 0, "Supplier ID (required)")
	cmd.Flags().String("name", "", "New name")
	addContactFlags(cmd)
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	s, err := args.App.SupplierService.UpdateSupplier(ctx, supplierservice.UpdateSupplierRequest{
		ID:      args.GetInt("id", 0),
		Name:    args.StringPtr("name"),
		Phone:   args.StringPtr("phone"),
		Email:   args.StringPtr("email"),
		Address: args.StringPtr("address"),
	})
	if err != nil {
		return nil, err
	}
	return record("Supplier updated", s), nil
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a supplier without supply orders",
		Long: `Delete a supplier. Suppliers with supply orders cannot be deleted;
inventory items linked to the supplier are unlinked.`,
		RunE: handler.Command(handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			id := args.GetInt("id", 0)
			if err := args.App.SupplierService.DeleteSupplier(ctx, id); err != nil {
				return nil, err
			}
			return cli.Deleted("supplier", id), nil
		}), requireID),
	}
	cmd.Flags().Int("id", 0, "Supplier ID (required)")
	handler.MarkRequired(cmd, "id")
	handler.AddOutputFlags(cmd)
	return cmd
}
