package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "aircon-controller",
	Short: "Keep a room inside its comfort band by toggling a Nature Remo air conditioner",
	Long: "Runs one control cycle per invocation: cooldown guard, cached temperature, " +
		"live state from the Nature Remo API, then at most one set-point change. " +
		"Starts the interactive setup instead when no token or appliance is configured.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runControl,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search configs/, ~/.config/aircon-controller, /etc/aircon-controller)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
