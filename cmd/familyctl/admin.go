package main

import (
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/models"
)

func newAddAdminCmd() *cobra.Command {
	var password string
	var email string
	var firstName string
	var lastName string

	cmd := &cobra.Command{
		Use:   "add-admin <username>",
		Short: "Create an admin account",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("username is required")
			}
			if len(password) < 6 {
				return errors.New("--password must be at least 6 characters")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cleanup, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := initializers.DB.From("user_profile").
				Where(goqu.C("username").Eq(args[0])).
				CountContext(cmd.Context())
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("username %q already exists", args[0])
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			var userID int
			_, err = initializers.DB.Insert("user_profile").
				Rows(models.UserProfile{
					Username:   args[0],
					Password:   string(hash),
					Email:      email,
					First_Name: firstName,
					Last_Name:  lastName,
					Admin:      true,
				}).
				Returning("user_profile_id").
				Executor().ScanValContext(cmd.Context(), &userID)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			cmd.Printf("created admin %s (id %d)\n", args[0], userID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (min 6 characters)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")

	return cmd
}
