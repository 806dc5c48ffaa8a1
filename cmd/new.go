package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/tui"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an environment with an interactive wizard",
	Long: `New walks through creating an environment:

  1. Project directory (optional, mounted in the environment)
  2. Template
  3. Environment name
  4. Confirmation

Press Ctrl+A on the name step to choose the backend and resources.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	spec, err := tui.RunWizard(app.Default.Templates.List(), createDefaults())
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}
	if spec == nil {
		logInfo("Cancelled")
		return nil
	}

	logInfo("Creating %s %s from template %s (this can take several minutes)...",
		spec.Backend.Class(), spec.Name, spec.Template)

	if err := reconciler().Create(commandContext(cmd), *spec); err != nil {
		return err
	}

	logSuccess("Created environment %s", spec.Name)
	logInfo("Open a shell with: udm shell %s", spec.Name)
	return nil
}
