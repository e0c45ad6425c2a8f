package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/faktur/internal/config"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/storage"
)

// app is what every subcommand runs against, opened once per invocation.
type app struct {
	envFile string

	cfg     *config.Config
	history *history.Service
	closer  io.Closer
}

func (a *app) open(ctx context.Context) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Driver, err)
	}

	a.cfg = cfg
	a.closer = closer
	a.history = history.NewService(repo, nil)
	a.history.Load(ctx)

	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}

	return a.closer.Close()
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "faktur",
		Short:         "Manage saved invoices from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load environment from this file instead of .env")

	root.AddCommand(
		newListCmd(a),
		newExportCmd(a),
		newPDFCmd(a),
		newTokenCmd(a),
	)

	return root
}
