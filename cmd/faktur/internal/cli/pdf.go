package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/faktur/internal/printing"
)

func newPDFCmd(a *app) *cobra.Command {
	var (
		id  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Print a saved invoice to PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			invoiceID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", id, err)
			}

			rec, err := a.history.Find(invoiceID)
			if err != nil {
				return err
			}

			profile, err := printing.LoadProfile(a.cfg.CompanyProfile)
			if err != nil {
				return err
			}

			if out == "" {
				out = filepath.Join(a.cfg.ExportDir, "invoice-"+invoiceID.String()+".pdf")
			}

			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating file: %w", err)
			}
			defer f.Close()

			if err := printing.NewRenderer(profile).WritePDF(f, printing.FromRecord(rec)); err != nil {
				return err
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("closing file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "invoice id")
	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to EXPORT_DIR/invoice-<id>.pdf)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
