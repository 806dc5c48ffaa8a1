package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Config reads and writes the settings file. Keys are dotted, for
example default_backend or lxd.storage_pool.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every setting",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore one or every setting to its default",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigReset,
}

var configExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the settings to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigExport,
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge settings from a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigImport,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings for invalid values",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configResetCmd,
		configExportCmd, configImportCmd, configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsStore() *config.Store {
	return config.LoadStore(paths().SettingsFile())
}

// saveValidated writes the store only if the result is valid.
func saveValidated(store *config.Store) error {
	settings, err := store.Settings()
	if err != nil {
		return errors.ConfigError("invalid settings", err)
	}
	if issues := settings.Validate(); len(issues) > 0 {
		return errors.ConfigError(formatIssues(issues), nil)
	}
	if err := store.Save(); err != nil {
		return errors.PersistenceFailed("failed to save settings", err)
	}
	return nil
}

func formatIssues(issues []config.Issue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store := settingsStore()
	out := cmd.OutOrStdout()

	if jsonOutput {
		settings, err := store.Settings()
		if err != nil {
			return errors.ConfigError("invalid settings", err)
		}
		return writeJSON(out, settings)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, key := range store.Keys() {
		value, _ := store.Get(key)
		fmt.Fprintf(w, "%s\t%v\n", key, value)
	}
	return w.Flush()
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, ok := settingsStore().Get(args[0])
	if !ok {
		return errors.ConfigError(fmt.Sprintf("unknown setting %q", args[0]), nil)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store := settingsStore()
	if err := store.Set(args[0], args[1]); err != nil {
		return errors.ConfigError(err.Error(), nil)
	}
	if err := saveValidated(store); err != nil {
		return err
	}
	logSuccess("Set %s = %s", args[0], args[1])
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	store := settingsStore()
	if len(args) == 0 {
		store.Reset()
	} else if err := store.ResetKey(args[0]); err != nil {
		return errors.ConfigError(err.Error(), nil)
	}
	if err := store.Save(); err != nil {
		return errors.PersistenceFailed("failed to save settings", err)
	}

	if len(args) == 0 {
		logSuccess("Restored default settings")
	} else {
		logSuccess("Restored default for %s", args[0])
	}
	return nil
}

func runConfigExport(cmd *cobra.Command, args []string) error {
	if err := settingsStore().Export(args[0]); err != nil {
		return errors.PersistenceFailed("failed to export settings", err)
	}
	logSuccess("Exported settings to %s", args[0])
	return nil
}

func runConfigImport(cmd *cobra.Command, args []string) error {
	store := settingsStore()
	if err := store.Import(args[0]); err != nil {
		return errors.ConfigError("failed to import settings", err)
	}
	if err := saveValidated(store); err != nil {
		return err
	}
	logSuccess("Imported settings from %s", args[0])
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	settings, err := settingsStore().Settings()
	if err != nil {
		return errors.ConfigError("invalid settings", err)
	}
	issues := settings.Validate()
	if len(issues) == 0 {
		logSuccess("Settings are valid")
		return nil
	}
	for _, issue := range issues {
		logWarning("%s", issue)
	}
	return errors.ConfigError(fmt.Sprintf("%d invalid setting(s)", len(issues)), nil)
}
