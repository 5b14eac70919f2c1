package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(cfgPath *string, verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			cats, err := e.store.ListCategories()
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Printf("%-36s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			cat, err := e.store.CreateCategory(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created category %s (%s)\n", cat.Name, cat.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category (transactions keep their rows, uncategorized)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*cfgPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()
			return e.store.DeleteCategory(args[0])
		},
	})

	return cmd
}
