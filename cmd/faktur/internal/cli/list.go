package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/faktur/internal/currency"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records := a.history.List()
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no invoices saved")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOMOR\tTANGGAL\tCUSTOMER\tTOTAL")

			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Number, currency.FormatDate(r.Date.Time), r.Customer, currency.Format(r.Total))
			}

			return w.Flush()
		},
	}
}
