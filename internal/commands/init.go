package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eric-minassian/ericfinance-sub001/internal/config"
	"github.com/eric-minassian/ericfinance-sub001/internal/store"
)

func newInitCommand(cfgPath *string) *cobra.Command {
	var dbPath string
	var endpoint string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, dbPath, endpoint)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "ledger.db", "database file name")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "portfolio service endpoint")
	return cmd
}

func runInit(dir, dbPath, endpoint string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(dir, dbPath)
	cfg.Sync.Endpoint = endpoint
	if err := config.Save(filepath.Join(dir, "ledger.yaml"), cfg); err != nil {
		return err
	}

	// Open once so the schema exists before first use.
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	fmt.Printf("Initialized ledger in %s\n", dir)
	return nil
}
