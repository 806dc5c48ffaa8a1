package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/tui"
)

var pickPlain bool

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive environment picker",
	Long: `Opens an interactive TUI listing every environment grouped by backend.

Use arrow keys or j/k to navigate and / to filter.

Actions:
  Enter  - Open a shell in a new terminal
  u      - Start the selected environment
  d      - Stop the selected environment
  x      - Delete the selected environment (asks first)
  n      - Create a new environment with the wizard
  r      - Refresh
  q/Esc  - Quit

Start, stop and delete run in the background; the list refreshes when
they finish.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVar(&pickPlain, "plain", false, "Print a plain listing instead of the interactive picker")
	rootCmd.AddCommand(pickCmd)
}

// createDefaults are the wizard's starting backend and resources.
func createDefaults() tui.CreateDefaults {
	return tui.CreateDefaults{
		Backend:   app.Default.DefaultBackend(),
		Resources: app.Default.DefaultResources(),
	}
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	if pickPlain {
		snap := reconciler().Snapshot(ctx)
		warnUnlisted(snap)
		fmt.Fprint(cmd.OutOrStdout(), tui.Summary(snap.Environments))
		return nil
	}

	logging.Debug("picker mode started")

	err := tui.RunPicker(ctx, reconciler(), tui.PickerOptions{
		AllowCreate: true,
		Templates:   app.Default.Templates.List(),
		Defaults:    createDefaults(),
	})
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}
	return nil
}
