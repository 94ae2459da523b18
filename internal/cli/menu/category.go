package menu

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/cli/handler"
)

// CategoryCmd returns the menu category command group
func CategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage menu categories",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a menu category",
		RunE: handler.Command(handler.HandlerFunc(runCategoryCreate), func(cmd *cobra.Command) error {
			_, err := handler.NewFlagParser(cmd).ParseString("name")
			return err
		}),
	}
	create.Flags().String("name", "", "Category name (required)")
	handler.MarkRequired(create, "name")
	handler.AddOutputFlags(create)

	list := &cobra.Command{
		Use:   "list",
		Short: "List menu categories",
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runCategoryList)),
	}
	handler.AddOutputFlags(list)

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete an empty menu category",
		RunE:  handler.Command(handler.HandlerFunc(runCategoryDelete), requireID),
	}
	del.Flags().Int("id", 0, "Category ID (required)")
	handler.MarkRequired(del, "id")
	handler.AddOutputFlags(del)

	cmd.AddCommand(create, list, del)
	return cmd
}

func runCategoryCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	c, err := args.App.MenuService.CreateCategory(ctx, args.GetString("name", ""))
	if err != nil {
		return nil, err
	}
	return &cli.Record{
		ID:     c.ID,
		Title:  "Category created",
		Fields: []cli.Field{{Label: "ID", Value: strconv.Itoa(c.ID)}, {Label: "Name", Value: c.Name}},
		Data:   c,
	}, nil
}

func runCategoryList(ctx context.Context, args *handler.Arguments) (any, error) {
	categories, err := args.App.MenuService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	l := &cli.Listing{
		Title:   "Categories",
		Headers: []string{"ID", "Name"},
		Empty:   "No categories found",
		Data:    categories,
	}
	for _, c := range categories {
		l.IDs = append(l.IDs, c.ID)
		l.Rows = append(l.Rows, []string{strconv.Itoa(c.ID), c.Name})
	}
	return l, nil
}

func runCategoryDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	id := args.GetInt("id", 0)
	if err := args.App.MenuService.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	return cli.Deleted("category", id), nil
}
