package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRulesCommand(cfgPath *string, verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage auto-categorization rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			rules, err := e.store.ListRules()
			if err != nil {
				return err
			}
			for _, r := range rules {
				fmt.Printf("%-36s  %-24s -> %s\n", r.ID, r.Pattern, r.CategoryID)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <pattern> <category-name>",
		Short: "Create a rule assigning a category to matching payees",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			cat, err := e.store.FindCategoryByName(args[1])
			if err != nil {
				return err
			}
			if cat == nil {
				return fmt.Errorf("unknown category %q", args[1])
			}
			rule, err := e.store.CreateRule(args[0], cat.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Created rule %s\n", rule.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()
			return e.store.DeleteRule(args[0])
		},
	})

	return cmd
}
