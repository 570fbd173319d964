package main

import (
	"fmt"

	"serwer-dostepu/internal/access"

	"github.com/spf13/cobra"
)

func newShuffleCmd(opts *globalOptions) *cobra.Command {
	var rootID string

	cmd := &cobra.Command{
		Use:   "shuffle --root ID VALUE...",
		Short: "Print VALUEs in the order the actor sees them under root",
		Long: `Print VALUEs in the order the actor sees them under root.
The last value always stays last.

Examples:
  accessctl shuffle --root ROOT_ID -a anna-id a b c d`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootID == "" {
				return fmt.Errorf("--root is required")
			}
			for _, v := range access.SeededOrder(args, access.CombineIDs(rootID, opts.actor)) {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rootID, "root", "", "Root item seeding the shuffle")

	return cmd
}
