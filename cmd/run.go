package main

import (
	"context"
	"fmt"

	"aircon_controller/internal/service"

	"github.com/spf13/cobra"
)

func runControl(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Run.Timeout)
	defer cancel()

	res, err := a.services.Controller.RunOnce(ctx)
	if err != nil {
		a.log.Errorw("control_run_failed", "err", err)
		return err
	}
	a.log.Debugw("control_run_done", "outcome", res.Outcome)

	if res.Outcome != service.OutcomeSetupRequired {
		return nil
	}
	// Setup needs a human, so the run deadline does not apply.
	return runSetupDialogue(cmd, a)
}

func runSetupDialogue(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- starting first-time setup ---")
	if _, err := a.services.Setup.Run(cmd.Context(), cmd.InOrStdin(), out); err != nil {
		a.log.Errorw("setup_failed", "err", err)
		return err
	}
	fmt.Fprintln(out, "--- setup complete; run again to start controlling the air conditioner ---")
	return nil
}
