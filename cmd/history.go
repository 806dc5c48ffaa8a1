package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/audit"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show the lifecycle history of an environment",
	Long: `History prints the recorded create, start, stop, exec, delete and
prune events for an environment, oldest first. History outlives the
environment unless it was deleted with --forget.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show only the last N events")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	name := args[0]

	events, err := app.Default.History.Tail(name, historyLimit)
	if err != nil {
		return errors.PersistenceFailed("failed to read history", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if events == nil {
			events = []audit.Event{}
		}
		return writeJSON(out, events)
	}

	if len(events) == 0 {
		logInfo("No history for environment %s", name)
		return nil
	}

	for _, e := range events {
		fmt.Fprintln(out, formatEvent(e))
	}
	return nil
}

func formatEvent(e audit.Event) string {
	line := fmt.Sprintf("[%s] %-7s %-6s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Type, e.Outcome)
	if e.Backend != "" {
		line += " " + e.Backend
	}
	if e.Details != "" {
		line += " (" + e.Details + ")"
	}
	if e.Error != "" {
		line += ": " + e.Error
	}
	return line
}
