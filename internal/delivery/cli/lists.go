package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/spf13/cobra"
)

func newListsCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage shopping lists",
	}

	cmd.AddCommand(
		newListsListCmd(d),
		newListsShowCmd(d),
		newListsCreateCmd(d),
		newListsDeleteCmd(d),
		newListsAddItemCmd(d),
	)

	return cmd
}

func newListsListCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your shopping lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(d)
			if err != nil {
				return err
			}

			lists, err := d.account.ShoppingLists(cmd.Context(), session)
			if err != nil {
				return err
			}

			if len(lists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shopping lists yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tITEMS")
			for _, l := range lists {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", l.ID, l.Name, len(l.Items))
			}

			return tw.Flush()
		},
	}
}

func newListsShowCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(d)
			if err != nil {
				return err
			}

			list, err := d.account.ShoppingList(cmd.Context(), session, args[0])
			if err != nil {
				return err
			}

			return printList(cmd.OutOrStdout(), list)
		},
	}
}

func newListsCreateCmd(d *deps) *cobra.Command {
	var items []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a shopping list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(d)
			if err != nil {
				return err
			}

			reqItems, err := parseItems(items)
			if err != nil {
				return err
			}

			list, err := d.account.CreateShoppingList(cmd.Context(), session, usecase.NewShoppingListReq(strings.Join(args, " "), reqItems))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created list %s\n", list.ID)
			return printList(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "item as product_id or product_id:quantity (repeatable)")

	return cmd
}

func newListsDeleteCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(d)
			if err != nil {
				return err
			}

			if err := d.account.DeleteShoppingList(cmd.Context(), session, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %s\n", args[0])
			return nil
		},
	}
}

func newListsAddItemCmd(d *deps) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add-item <list-id> <product-id>",
		Short: "Add a product to a shopping list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(d)
			if err != nil {
				return err
			}

			item := &usecase.ShoppingListItemReq{ProductID: args[1], Quantity: quantity}
			list, err := d.account.AddShoppingListItem(cmd.Context(), session, args[0], item)
			if err != nil {
				return err
			}

			return printList(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")

	return cmd
}

// parseItems разбирает позиции вида product_id или product_id:quantity.
func parseItems(raw []string) ([]usecase.ShoppingListItemReq, error) {
	items := make([]usecase.ShoppingListItemReq, 0, len(raw))
	for _, r := range raw {
		productID, qty, found := strings.Cut(r, ":")
		item := usecase.ShoppingListItemReq{ProductID: productID, Quantity: 1}
		if found {
			n, err := strconv.Atoi(qty)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", e.ErrInvalidQuantity, r)
			}
			item.Quantity = n
		}
		items = append(items, item)
	}

	return items, nil
}

func printList(w io.Writer, list *domain.ShoppingList) error {
	fmt.Fprintf(w, "%s (%s)\n", list.Name, list.ID)
	if len(list.Items) == 0 {
		_, err := fmt.Fprintln(w, "  (empty)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range list.Items {
		fmt.Fprintf(tw, "  %s\tx%d\n", it.ProductID, it.Quantity)
	}

	return tw.Flush()
}
