package main

import "github.com/spf13/cobra"

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store a Nature Remo access token and choose the air conditioner to control",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()
		return runSetupDialogue(cmd, a)
	},
}
