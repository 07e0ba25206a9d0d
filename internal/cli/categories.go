package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"storysite/internal/catalog"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.clients.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(categories, func() error {
				rows := make([][]string, 0, len(categories))
				for _, c := range categories {
					rows = append(rows, []string{c.ID, c.Slug, c.Name, c.Parent()})
				}
				return app.table([]string{"ID", "SLUG", "NAME", "PARENT"}, rows)
			})
		},
	}

	tree := &cobra.Command{
		Use:   "tree",
		Short: "Show the category tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.clients.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			nodes := catalog.Tree(categories)
			return app.emit(nodes, func() error {
				for _, n := range catalog.Flatten(nodes) {
					app.printf("%s%s (%s)\n", strings.Repeat("  ", n.Depth), n.Category.Name, n.Category.Slug)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, tree)
	return cmd
}
