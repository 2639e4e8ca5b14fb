package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gzhole/suidprobe/internal/logger"
	"github.com/gzhole/suidprobe/internal/probe"
	"github.com/spf13/cobra"
)

var (
	logFilterState string
	logLast        int
	logSummary     bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the probe audit log",
	Long: `View the audit log written by earlier runs with --log.

Examples:
  suidprobe log --log /tmp/probe.jsonl                           # Show all entries
  suidprobe log --log /tmp/probe.jsonl --last 5                  # Show last 5 entries
  suidprobe log --log /tmp/probe.jsonl --state escalation_failed # Only denied runs
  suidprobe log --log /tmp/probe.jsonl --summary                 # Count runs by outcome`,
	Args: cobra.NoArgs,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterState, "state", "", "Filter by state (start, elevated, escalation_failed, replacement_failed)")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	if logPath == "" {
		return errors.New("no audit log given; pass --log <path>")
	}

	events, err := logger.Read(logPath)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(events) == 0 {
		fmt.Fprintln(out, "No audit log entries found.")
		return nil
	}

	if logSummary {
		printSummary(out, events)
		return nil
	}

	filtered := filterEvents(events)
	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	printEvents(out, filtered)
	return nil
}

func filterEvents(events []logger.ProbeEvent) []logger.ProbeEvent {
	if logFilterState == "" {
		return events
	}

	var filtered []logger.ProbeEvent
	for _, e := range events {
		if strings.EqualFold(e.State, logFilterState) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func printEvents(out io.Writer, events []logger.ProbeEvent) {
	for _, e := range events {
		fmt.Fprintf(out, "%s %s %-18s uid=%d euid=%d\n",
			stateIcon(e.State), formatTimestamp(e.Timestamp), e.State, e.RealID, e.EffectiveID)

		if e.Command != "" {
			fmt.Fprintf(out, "     Command: %s\n", e.Command)
		}
		if e.Error != "" {
			fmt.Fprintf(out, "     Error: %s\n", e.Error)
		}
	}
}

// printSummary counts runs by how far they got. Every run logs exactly one
// start event; a run whose last event is "elevated" handed over to the shell.
func printSummary(out io.Writer, events []logger.ProbeEvent) {
	counts := map[string]int{}
	for _, e := range events {
		counts[e.State]++
	}

	runs := counts[probe.StateStart.String()]
	denied := counts[probe.StateEscalationFailed.String()]
	replaceFailed := counts[probe.StateReplacementFailed.String()]
	replaced := counts[probe.StateElevated.String()] - replaceFailed

	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintln(out, "  suidprobe Audit Summary")
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  Runs:               %d\n", runs)
	fmt.Fprintf(out, "  Escalation denied:  %d\n", denied)
	fmt.Fprintf(out, "  Shell unavailable:  %d\n", replaceFailed)
	fmt.Fprintf(out, "  Replaced by shell:  %d\n", replaced)
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  First event:        %s\n", formatTimestamp(events[0].Timestamp))
	fmt.Fprintf(out, "  Last event:         %s\n", formatTimestamp(events[len(events)-1].Timestamp))
}

func stateIcon(state string) string {
	switch state {
	case probe.StateEscalationFailed.String(), probe.StateReplacementFailed.String():
		return "\xf0\x9f\x9b\x91" // stop sign
	case probe.StateElevated.String():
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning
	case probe.StateStart.String():
		return "\xe2\x96\xb6\xef\xb8\x8f" // play
	default:
		return "\xe2\x9d\x93" // question mark
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
