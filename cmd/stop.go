package cmd

import (
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a running environment",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	name := args[0]

	stopped, err := reconciler().Stop(commandContext(cmd), name)
	if err != nil {
		return err
	}
	if !stopped {
		logInfo("Environment %s is already stopped", name)
		return nil
	}

	logSuccess("Stopped environment %s", name)
	return nil
}
