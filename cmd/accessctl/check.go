package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check ITEM...",
		Short: "Print the access decision of the actor on each item",
		Long: `Print the access decision of the actor on each item.

Examples:
  accessctl check -s hierarchy.yml -a anna-id ITEM_ID
  accessctl check -s hierarchy.yml ITEM_ID OTHER_ID   # anonymous`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver(context.Background())
			if err != nil {
				return err
			}
			actor := opts.actorOf()
			for _, id := range args {
				d, err := r.Resolve(actor, id)
				if err != nil {
					return err
				}
				printDecision(cmd, id, d)
			}
			return nil
		},
	}
}
