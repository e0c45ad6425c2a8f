package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/faktur/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all saved invoices to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			dir := out
			if dir == "" {
				dir = a.cfg.ExportDir
			}

			path, err := export.NewService(a.history).ToFile(cmd.Context(), f, dir)
			if err != nil {
				return fmt.Errorf("exporting invoices: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			fmt.Fprint(cmd.OutOrStdout(), export.Summary(a.history.List()))

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output directory (defaults to EXPORT_DIR)")

	return cmd
}
