package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/FamilyQT/services"
)

func newFamilyPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "family-password <password>",
		Short: "Set the shared family access password",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("password is required")
			}
			if len(args[0]) < 4 {
				return errors.New("password must be at least 4 characters")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cleanup, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := services.SetFamilyPassword(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("family password updated")
			return nil
		},
	}
}
