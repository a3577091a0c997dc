package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "algotradex",
	Short: "Backtesting platform for NSE trading strategies",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(syncCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
