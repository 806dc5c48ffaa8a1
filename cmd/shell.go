package cmd

import (
	"github.com/spf13/cobra"
)

var shellHere bool

var shellCmd = &cobra.Command{
	Use:   "shell <name>",
	Short: "Open a shell in a running environment",
	Long: `Shell opens an interactive shell in a new terminal window and returns
immediately. With --here the shell runs in the current terminal instead.

The terminal emulator is taken from the terminal_emulator setting; "auto"
picks the emulator udm is running in, then the first one installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&shellHere, "here", false, "Run the shell in the current terminal")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := commandContext(cmd)

	if shellHere {
		return reconciler().ExecInteractive(ctx, name, []string{"/bin/bash", "-l"})
	}

	if err := reconciler().OpenShell(ctx, name); err != nil {
		return err
	}
	logSuccess("Opened a shell for %s in a new terminal", name)
	return nil
}
