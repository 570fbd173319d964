package main

import (
	"context"
	"fmt"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/config"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/database/backend"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	snapshot  string
	configDir string
	actor     string
	guestItem string
	verbose   bool

	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "accessctl",
		Short:         "Inspect item access and visibility",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logrus.New()
			opts.logger.SetOutput(cmd.ErrOrStderr())
			opts.logger.SetLevel(logrus.WarnLevel)
			if opts.verbose {
				opts.logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.snapshot, "snapshot", "s", "", "YAML hierarchy to read instead of the configured database")
	flags.StringVar(&opts.configDir, "config", "./configs", "Directory holding settings.yml")
	flags.StringVarP(&opts.actor, "actor", "a", "", "Member id to check for, anonymous when empty")
	flags.StringVar(&opts.guestItem, "guest-item", "", "Treat the actor as a guest signed in through this item")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newChildrenCmd(opts))
	rootCmd.AddCommand(newShuffleCmd(opts))
	rootCmd.AddCommand(newImportCmd(opts))

	return rootCmd
}

func (o *globalOptions) actorOf() *access.Actor {
	if o.actor == "" {
		return nil
	}
	return &access.Actor{
		ID:              o.actor,
		Guest:           o.guestItem != "",
		ItemLoginItemID: o.guestItem,
	}
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(viper.New(), o.configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolver reads one snapshot, from --snapshot when given, otherwise from
// the configured backend.
func (o *globalOptions) resolver(ctx context.Context) (*access.Resolver, error) {
	if o.snapshot != "" {
		o.logger.Debugf("reading snapshot from %s", o.snapshot)
		f, err := database.LoadFixture(o.snapshot)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		return access.NewResolver(access.NewSnapshot(f.SnapshotData())), nil
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	o.logger.Debugf("reading snapshot from %s backend", cfg.DB.Driver)
	store, release, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return access.NewResolver(snap), nil
}

func printDecision(cmd *cobra.Command, itemID string, d access.Decision) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", itemID, d)
}

func exitOnDenied(d access.Decision) error {
	if d.IsGranted() {
		return nil
	}
	return fmt.Errorf("access denied: %s", d)
}
