package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var databaseURLFlag string

	ctx := newCommandContext(&databaseURLFlag)

	rootCmd := &cobra.Command{
		Use:           "coverctl",
		Short:         "Inspect and migrate the cover builder database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&databaseURLFlag, "database-url", "", "Database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newProjectsCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))
	rootCmd.AddCommand(newImagesCommand(ctx))

	return rootCmd
}
