package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/FamilyQT/initializers"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "familyctl",
		Short:         "Administration tasks for the FamilyQT backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initializers.LoadEnv()
			initializers.InitLogger()
		},
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newMigrateCmd(),
		newFamilyPasswordCmd(),
		newAddAdminCmd(),
		newReportCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

// openDB connects to DB_URL and installs the handle as initializers.DB.
var openDB = func(ctx context.Context) (*sql.DB, func(), error) {
	url := os.Getenv("DB_URL")
	if url == "" {
		return nil, nil, fmt.Errorf("DB_URL is not set")
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	initializers.DB = goqu.New("postgres", db)
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}
