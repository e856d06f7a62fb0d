package cmd

import (
	"htassist/lib/textutil"
	"htassist/lib/timezone"
	"htassist/services/ledger"
	"htassist/services/monitor"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.AddCommand(monitorListCmd)
	monitorCmd.AddCommand(monitorSellCmd)
	monitorCmd.AddCommand(monitorHistoryCmd)

	monitorListCmd.Flags().Bool("all", false, "include sold players")
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Manages the players of the ledger.",
}

var monitorListCmd = &cobra.Command{
	Use:   "list [name filter...]",
	Short: "Prints the monitored players.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, database, err := openLedger(cmd.Context(), config, true)
		if err != nil {
			return err
		}
		defer database.Close()

		entries, err := store.Players(cmd.Context())
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		var shown []ledger.Entry
		for _, e := range entries {
			if e.IsSold() && !all {
				continue
			}
			if !textutil.MatchName(e.Name, args) {
				continue
			}
			shown = append(shown, e)
		}
		monitor.EntriesReport(cmd.OutOrStdout(), shown)
		return nil
	},
}

var monitorSellCmd = &cobra.Command{
	Use:   "sell <name>",
	Short: "Stops monitoring a sold player, its history is kept.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, database, err := openLedger(cmd.Context(), config, flags.readOnly)
		if err != nil {
			return err
		}
		defer database.Close()
		return store.SellPlayer(cmd.Context(), args[0], timezone.Now())
	},
}

var monitorHistoryCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Prints the snapshots of a player.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, database, err := openLedger(cmd.Context(), config, true)
		if err != nil {
			return err
		}
		defer database.Close()

		_, snapshots, err := store.PlayerHistory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		monitor.HistoryReport(cmd.OutOrStdout(), snapshots)
		return nil
	},
}
