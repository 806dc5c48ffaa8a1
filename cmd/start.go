package cmd

import (
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a stopped environment",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	name := args[0]

	started, err := reconciler().Start(commandContext(cmd), name)
	if err != nil {
		return err
	}
	if !started {
		logInfo("Environment %s is already running", name)
		return nil
	}

	logSuccess("Started environment %s", name)
	return nil
}
