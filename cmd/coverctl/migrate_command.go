package main

import (
	"fmt"

	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/logging"

	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDB(func(db *database.DB) error {
				migrator := database.NewMigrator(db, logging.Discard())
				pending, err := migrator.Pending(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(pending) == 0 {
					fmt.Fprintln(out, "Schema is up to date")
					return nil
				}
				if statusOnly {
					fmt.Fprintf(out, "%d pending migrations:\n", len(pending))
					for _, name := range pending {
						fmt.Fprintf(out, "  %s\n", name)
					}
					return nil
				}

				if err := migrator.Run(cmd.Context()); err != nil {
					return err
				}
				for _, name := range pending {
					fmt.Fprintf(out, "Applied %s\n", name)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "List pending migrations without applying them")
	return cmd
}
