package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(cfgPath *string, verbose *bool) *cobra.Command {
	var discard string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sync status: pending and conflicted changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			if discard != "" {
				if err := e.store.DiscardChange(discard); err != nil {
					return err
				}
				fmt.Printf("Discarded change %s\n", discard)
				return nil
			}

			pending, err := e.store.PendingChanges()
			if err != nil {
				return err
			}
			conflicted, err := e.store.ConflictedChanges()
			if err != nil {
				return err
			}
			cursor, err := e.store.SyncCursor()
			if err != nil {
				return err
			}

			fmt.Printf("Remote revision: %d\n", cursor)
			fmt.Printf("Pending changes: %d\n", len(pending))
			fmt.Printf("Conflicted changes: %d\n", len(conflicted))
			for _, c := range conflicted {
				fmt.Printf("  %s  rev %d  %s %s %s\n", c.ID, c.Revision, c.Op, c.EntityType, c.EntityID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&discard, "discard", "", "discard a conflicted change by id")
	return cmd
}
