package main

import (
	"context"
	"fmt"

	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/database/backend"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Write a YAML hierarchy into the configured database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			f, err := database.LoadFixture(args[0])
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.DB.Driver == backend.DriverMemory {
				return fmt.Errorf("import needs a persistent driver, got %q", cfg.DB.Driver)
			}

			store, release, err := backend.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()

			if err := database.Seed(ctx, store, f); err != nil {
				return err
			}
			opts.logger.WithFields(logrus.Fields{
				"driver": cfg.DB.Driver,
				"items":  len(f.Items),
			}).Info("hierarchy imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d members, %d items\n", len(f.Members), len(f.Items))
			return nil
		},
	}
}
