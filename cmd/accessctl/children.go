package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"

	"github.com/spf13/cobra"
)

func newChildrenCmd(opts *globalOptions) *cobra.Command {
	var (
		pinned  bool
		content bool
		shuffle bool
		rootID  string
	)

	cmd := &cobra.Command{
		Use:   "children PARENT",
		Short: "List the children of an item the actor can see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pinned && content {
				return fmt.Errorf("--pinned and --content cannot be combined")
			}
			r, err := opts.resolver(context.Background())
			if err != nil {
				return err
			}

			actor := opts.actorOf()
			parentID := args[0]

			var (
				children []models.Item
				decision access.Decision
			)
			switch {
			case pinned:
				children, decision, err = r.PinnedChildren(actor, parentID)
			case content:
				children, decision, err = r.ContentChildren(actor, parentID)
			default:
				children, decision, err = r.VisibleChildren(actor, parentID)
			}
			if err != nil {
				return err
			}
			if err := exitOnDenied(decision); err != nil {
				return err
			}

			if shuffle {
				if rootID == "" {
					rootID = parentID
				}
				children = access.SeededOrder(children, access.CombineIDs(rootID, opts.actor))
				opts.logger.Debugf("shuffled %d children with root %s", len(children), rootID)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range children {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Type, c.Name)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&pinned, "pinned", false, "Only pinned children")
	cmd.Flags().BoolVar(&content, "content", false, "Only non-folder, non-pinned children")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Order children with the actor's seeded shuffle")
	cmd.Flags().StringVar(&rootID, "root", "", "Root item seeding the shuffle, defaults to PARENT")

	return cmd
}
