package main

import (
	"github.com/spf13/cobra"

	"github.com/FamilyQT/initializers"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := initializers.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			cmd.Println("schema is up to date")
			return nil
		},
	}
}
