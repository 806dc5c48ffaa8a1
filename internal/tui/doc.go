// Package tui provides terminal user interface components for udm.
//
// This package uses the Bubble Tea framework for the interactive
// environment picker and the creation wizard.
//
// # Environment Picker
//
// The picker lists environments grouped by backend and drives them
// without leaving the screen:
//
//	opts := tui.PickerOptions{AllowCreate: true, Templates: catalog.List()}
//	err := tui.RunPicker(ctx, reconciler, opts)
//
// Every mutating action is dispatched as an operation.Operation. The
// picker keeps handling input while it runs and receives completion as a
// message, after which it lists the backends again.
//
// # Picker Keys
//
//   - Enter opens a shell in a new terminal window
//   - u starts, d stops, x deletes after a y/N confirmation
//   - n opens the creation wizard when AllowCreate is set
//   - r refreshes, / filters, q quits
//
// # Creation Wizard
//
// The wizard collects an optional project directory to mount, a template,
// a name, and optionally the backend and resource limits. RunWizard runs
// it standalone and returns a reconcile.CreateSpec.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
