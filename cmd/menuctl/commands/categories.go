package commands

import (
	"github.com/spf13/cobra"

	"menuhub/internal/domain"
	"menuhub/internal/managers"
)

func categoriesCmd() *cobra.Command {
	var (
		tree     bool
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List, tree or validate the brand's categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case validate:
				r := app.Categories.ValidateStructure(cmd.Context(), managers.Scope{})
				if r.Err != nil {
					return r.Err
				}
				return printJSON(r.Data)
			case tree:
				r := app.Categories.Tree(cmd.Context(), managers.Scope{})
				if r.Err != nil {
					return r.Err
				}
				return printJSON(r.Data)
			default:
				r := app.Categories.GetForAdmin(cmd.Context(), domain.CategoryFilter{}, managers.Scope{})
				if r.Err != nil {
					return r.Err
				}
				return printJSON(r)
			}
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the category forest")
	cmd.Flags().BoolVar(&validate, "validate", false, "print the structure validation report")
	return cmd
}
