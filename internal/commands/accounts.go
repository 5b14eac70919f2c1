package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eric-minassian/ericfinance-sub001/internal/model"
)

func newAccountsCommand(cfgPath *string, verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			accts, err := e.store.ListAccounts()
			if err != nil {
				return err
			}
			for _, a := range accts {
				bal, err := e.store.AccountBalance(a.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%-36s  %-12s  %-24s %12s\n", a.ID, a.Type, a.Name, bal.StringFixed(2))
			}
			return nil
		},
	})

	var acctType string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			acct, err := e.store.CreateAccount(args[0], model.AccountType(acctType))
			if err != nil {
				return err
			}
			fmt.Printf("Created account %s (%s)\n", acct.Name, acct.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&acctType, "type", string(model.AccountTypeChecking), "account type")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account (rejected while transactions reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()
			return e.store.DeleteAccount(args[0])
		},
	})

	return cmd
}
