// Package commands wires the CLI: every subcommand opens the store and
// operates through the same import/resolve/sync core the rest of the
// application uses.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eric-minassian/ericfinance-sub001/internal/buildinfo"
	"github.com/eric-minassian/ericfinance-sub001/internal/config"
	"github.com/eric-minassian/ericfinance-sub001/internal/logging"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var cfgPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "ledgersync",
		Short:   "Local-first personal finance ledger with portfolio sync",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "ledger.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	rootCmd.AddCommand(newInitCommand(&cfgPath))
	rootCmd.AddCommand(newImportCommand(&cfgPath, &verbose))
	rootCmd.AddCommand(newSyncCommand(&cfgPath, &verbose))
	rootCmd.AddCommand(newAccountsCommand(&cfgPath, &verbose))
	rootCmd.AddCommand(newCategoriesCommand(&cfgPath, &verbose))
	rootCmd.AddCommand(newRulesCommand(&cfgPath, &verbose))
	rootCmd.AddCommand(newStatusCommand(&cfgPath, &verbose))

	return rootCmd
}

// env bundles what most subcommands need: loaded config, an open store,
// and a logger.
type env struct {
	cfg   *config.Config
	store *store.Store
	log   zerolog.Logger
}

func openEnv(cfgPath string, verbose bool) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, store: st, log: logging.New(verbose)}, nil
}

func (e *env) close() {
	_ = e.store.Close()
}
