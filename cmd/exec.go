package cmd

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

var execCapture bool

var execCmd = &cobra.Command{
	Use:   "exec <name> -- <command>",
	Short: "Execute a command in a running environment",
	Long: `Exec runs a command inside a running environment. Everything after --
is the command. A single quoted argument is split the way a shell would:

  udm exec web -- ls -la /home/ubuntu
  udm exec web -- 'cd /srv && make test'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().BoolVar(&execCapture, "capture", false, "Capture output and print it when the command finishes")
	rootCmd.AddCommand(execCmd)
}

// execArgs returns the command after the -- separator.
func execArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash < 1 || dash >= len(args) {
		return nil, errors.ValidationError("usage: udm exec <name> -- <command>")
	}
	command := args[dash:]
	logging.Debug("exec command", "argv", shellquote.Join(command...))

	if len(command) == 1 {
		words, err := shellquote.Split(command[0])
		if err != nil {
			return nil, errors.ValidationError("invalid command: " + err.Error())
		}
		if len(words) > 1 {
			command = []string{"bash", "-c", command[0]}
		}
	}
	return command, nil
}

func runExec(cmd *cobra.Command, args []string) error {
	name := args[0]
	command, err := execArgs(cmd, args)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if !execCapture {
		return reconciler().ExecInteractive(ctx, name, command)
	}

	res, err := reconciler().Exec(ctx, name, command)
	fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
	fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
	return err
}
