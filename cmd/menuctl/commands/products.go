package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"menuhub/internal/domain"
	"menuhub/internal/managers"
)

func productsCmd() *cobra.Command {
	var (
		search string
		offset int
		limit  int
		admin  bool
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products for the configured brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.ProductFilter{
				SearchTerm: search,
				Offset:     offset,
				Limit:      limit,
			}

			var res any
			var resErr error
			if admin {
				r := app.Products.GetForAdmin(cmd.Context(), filter, managers.Scope{})
				res, resErr = r, r.Err
			} else {
				r := app.Products.GetForMenu(cmd.Context(), filter, managers.Scope{})
				res, resErr = r, r.Err
			}
			if resErr != nil {
				return resErr
			}
			return printJSON(res)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "client-side search term")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset (admin list)")
	cmd.Flags().IntVar(&limit, "limit", 50, "pagination limit (admin list)")
	cmd.Flags().BoolVar(&admin, "admin", false, "use the admin list instead of the menu list")
	return cmd
}

func menuCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the menu for the configured (brand, point, order type) context",
		RunE: func(cmd *cobra.Command, args []string) error {
			if search != "" {
				r := app.Menu.Search(cmd.Context(), domain.ProductFilter{SearchTerm: search}, managers.Scope{})
				if r.Err != nil {
					return r.Err
				}
				return printJSON(r)
			}
			r := app.Menu.Get(cmd.Context(), managers.Scope{})
			if r.Err != nil {
				return r.Err
			}
			if r.Data == nil {
				return errors.New("empty menu")
			}
			return printJSON(r)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search the menu's products")
	return cmd
}
