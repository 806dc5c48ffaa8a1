package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/config"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configDir  string
)

var rootCmd = &cobra.Command{
	Use:   "udm",
	Short: "Ubuntu development environment manager",
	Long: `udm creates and manages Ubuntu development environments.

Each environment is either:
  - a multipass virtual machine, or
  - an LXD system container

provisioned from a template (packages plus setup commands) and tracked
in a local registry so it can be listed, started, stopped, opened in a
new terminal, and deleted.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
		logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

		if app.Default == nil || configDir != "" {
			var opts []app.Option
			if configDir != "" {
				opts = append(opts, app.WithPaths(config.PathsFor(configDir)))
			}
			app.SetDefault(app.New(opts...))
		}
		logging.SetLevel(app.Default.Settings.LogLevel)
	},
}

// Execute runs the root command. An interrupt cancels the context passed
// to the commands.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs and results in JSON format")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Use this directory for configuration and state")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
