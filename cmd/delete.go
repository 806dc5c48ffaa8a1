package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

var (
	deleteForce  bool
	deleteForget bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Stop and permanently remove an environment",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
	deleteCmd.Flags().BoolVar(&deleteForget, "forget", false, "Also remove the environment's event history")
	rootCmd.AddCommand(deleteCmd)
}

// confirm asks a yes/no question on the command's input. Anything but
// y or yes is a no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := commandContext(cmd)

	env, _, err := reconciler().Find(ctx, name)
	if err != nil {
		return err
	}

	if !deleteForce && !confirm(cmd, fmt.Sprintf("Delete %s %s? This cannot be undone.", env.Backend.Class(), name)) {
		logInfo("Cancelled")
		return nil
	}

	logging.Debug("deleting environment", "name", name, "backend", env.Backend, "status", env.Status)
	logInfo("Deleting environment %s...", name)

	if err := reconciler().Delete(ctx, name); err != nil {
		return err
	}

	if deleteForget {
		if err := app.Default.History.Remove(name); err != nil {
			logWarning("failed to remove history for %s: %v", name, err)
		}
	}

	logSuccess("Deleted environment %s", name)
	return nil
}
