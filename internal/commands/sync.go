package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eric-minassian/ericfinance-sub001/internal/resolver"
	"github.com/eric-minassian/ericfinance-sub001/internal/syncer"
)

func newSyncCommand(cfgPath *string, verbose *bool) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the ledger with the portfolio service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			if e.cfg.Sync.Endpoint == "" {
				return fmt.Errorf("no sync endpoint configured in %s", *cfgPath)
			}

			remote := syncer.NewHTTPRemote(e.cfg.Sync.Endpoint, e.cfg.Sync.APIKey, e.cfg.Sync.Timeout())
			client := syncer.NewClient(e.store, resolver.New(e.store), remote, e.log)
			session := syncer.NewSession(client, e.log, e.cfg.Sync.MaxAttempts, e.cfg.Sync.Backoff())

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if !watch {
				return session.Sync(ctx)
			}

			// Run one cycle now, then on the configured interval until
			// interrupted. Teardown just stops the timer; pending changes
			// persist across restarts.
			if err := session.Sync(ctx); err != nil {
				e.log.Error().Err(err).Msg("initial sync failed")
			}
			session.Start(ctx, e.cfg.Sync.Interval())
			<-ctx.Done()
			session.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep syncing on the configured interval")
	return cmd
}
