package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/services"
)

func newReportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "weekly-report",
		Short: "Email last week's summary now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cleanup, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			now := time.Now().In(initializers.Location())

			if dryRun {
				report, err := services.LoadWeeklyReport(cmd.Context(), now)
				if err != nil {
					return err
				}
				html, err := services.RenderWeeklyReport(report)
				if err != nil {
					return err
				}
				cmd.Println(html)
				return nil
			}

			services.InitEmailService()
			report, err := services.SendWeeklyReport(cmd.Context(), now)
			if err != nil {
				return err
			}
			cmd.Printf("sent report for %s ~ %s (%d members)\n", report.Start, report.End, len(report.Rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report HTML instead of sending it")

	return cmd
}
