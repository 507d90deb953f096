package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/render"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/spf13/cobra"
)

func newSearchCmd(d *deps) *cobra.Command {
	var guest bool

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search products and compare prices across stores",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := searchSession(d, guest)
			if err != nil {
				return err
			}

			res, err := d.comparison.Compare(cmd.Context(), usecase.NewCompareReq(session, strings.Join(args, " ")))
			if err != nil {
				return err
			}

			return printResults(cmd.OutOrStdout(), res, d.v.GetInt(flagChartWidth))
		},
	}

	cmd.Flags().BoolVar(&guest, "guest", false, "search as a guest even when logged in")

	return cmd
}

// searchSession возвращает сохранённую сессию или nil для гостевого поиска.
func searchSession(d *deps, guest bool) (*domain.Session, error) {
	if guest {
		return nil, nil
	}

	return d.sessions.Load()
}

// printResults печатает товары в порядке выдачи: самую низкую цену и диаграмму цен по магазинам.
func printResults(w io.Writer, res *usecase.CompareRes, width int) error {
	mode := "signed in"
	if res.Guest {
		mode = "guest"
	}

	if len(res.Views) == 0 {
		_, err := fmt.Fprintf(w, "No products found for %q (%s)\n", res.Query, mode)
		return err
	}

	if _, err := fmt.Fprintf(w, "%d products for %q (%s)\n", len(res.Views), res.Query, mode); err != nil {
		return err
	}

	for _, v := range res.Views {
		name := v.Product.Name
		if v.Product.Category != "" {
			name += " [" + v.Product.Category + "]"
		}

		if _, err := fmt.Fprintf(w, "\n%s\n  cheapest: %s\n", name, render.FormatLowest(v)); err != nil {
			return err
		}

		if !v.HasPrices() {
			continue
		}

		chart := render.TextChart(*v.Series, width)
		for _, line := range strings.Split(strings.TrimRight(chart, "\n"), "\n") {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}

	return nil
}
