package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eric-minassian/ericfinance-sub001/internal/importer"
	"github.com/eric-minassian/ericfinance-sub001/internal/resolver"
)

func newImportCommand(cfgPath *string, verbose *bool) *cobra.Command {
	var account string
	mapping := importer.NewColumnMapping()

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening CSV: %w", err)
			}
			defer f.Close()

			imp := importer.New(e.store, resolver.New(e.store))
			result, err := imp.Import(f, mapping, account, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d transactions (%d duplicates skipped)\n",
				result.Imported, result.SkippedDuplicates)
			if result.CreatedAccount {
				fmt.Printf("Created account %q\n", account)
			}
			for _, name := range result.CreatedCategories {
				fmt.Printf("Created category %q\n", name)
			}
			for _, sym := range result.CreatedSecurities {
				fmt.Printf("Created security %q\n", sym)
			}
			for _, re := range result.RowErrors {
				fmt.Printf("row %d: %s\n", re.Row, re.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "target account name (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().IntVar(&mapping.Date, "date-col", 0, "date column index")
	cmd.Flags().IntVar(&mapping.Amount, "amount-col", 1, "amount column index")
	cmd.Flags().IntVar(&mapping.Payee, "payee-col", 2, "payee column index")
	cmd.Flags().IntVar(&mapping.Category, "category-col", importer.Unmapped, "category column index")
	cmd.Flags().IntVar(&mapping.Security, "security-col", importer.Unmapped, "security column index")
	return cmd
}
