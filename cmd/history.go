package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"aircon_controller/internal/service"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	from string
	to   string
	typ  string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled control events",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.from, "from", "", "start of range (RFC3339 or YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyFlags.to, "to", "", "end of range (RFC3339 or YYYY-MM-DD, date-only covers the whole day)")
	historyCmd.Flags().StringVar(&historyFlags.typ, "type", "", "event type, e.g. SETPOINT_CHANGED")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter(historyFlags.from, historyFlags.to, historyFlags.typ)
	if err != nil {
		return reportEarly(err)
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	events, err := a.services.EventLog.List(cmd.Context(), filter)
	if err != nil {
		a.log.Errorw("history_failed", "err", err)
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tDESCRIPTION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.OccurredAt.Local().Format(time.DateTime), e.Type, e.Description)
	}
	return w.Flush()
}

func historyFilter(from, to, typ string) (service.LogFilter, error) {
	f := service.LogFilter{Type: typ}
	if from != "" {
		t, _, err := parseFlagTime(from)
		if err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
		f.From = t
	}
	if to != "" {
		t, dateOnly, err := parseFlagTime(to)
		if err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	return f, nil
}

// parseFlagTime reads RFC3339 or a local calendar date.
func parseFlagTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid time %q, use RFC3339 or YYYY-MM-DD", s)
}
