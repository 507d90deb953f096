package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStoresCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List supported retailers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := d.account.Stores(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range stores {
				fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.URL)
			}

			return tw.Flush()
		},
	}
}
