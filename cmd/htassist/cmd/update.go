package cmd

import (
	"context"
	"fmt"

	"htassist/lib/scrapers/hattrick/core"
	"htassist/lib/scrapers/hattrick/view"
	"htassist/lib/telemetry"
	"htassist/services/monitor"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Bool("no-mail", false, "do not mail the report even if smtp is configured")
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Files today's snapshot of the team and of every monitored player.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, database, err := openLedger(ctx, config, flags.readOnly)
		if err != nil {
			return err
		}
		defer database.Close()
		service := monitor.NewService(store, telemetry.SlogAPI{})

		var summary monitor.Summary
		err = core.WithSession(ctx, clientOptions(config, flags.verbose), func(ctx context.Context, client *core.Client) error {
			var err error
			summary, err = service.Update(ctx, view.NewClient(client))
			return err
		})
		if err != nil {
			return err
		}
		monitor.Report(cmd.OutOrStdout(), summary)

		noMail, _ := cmd.Flags().GetBool("no-mail")
		if noMail || !config.Smtp.Enabled() {
			return nil
		}
		err = monitor.Notify(ctx, config.Smtp, summary)
		if err != nil {
			return fmt.Errorf("mail the report: %w", err)
		}
		return nil
	},
}
