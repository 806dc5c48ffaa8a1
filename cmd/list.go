package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "ps"},
	Short:   "List all environments",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	snap := reconciler().Snapshot(commandContext(cmd))
	warnUnlisted(snap)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, snap.Environments)
	}

	if len(snap.Environments) == 0 {
		logInfo("No environments found. Create one with: udm create <name> -t <template>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKEND\tTEMPLATE\tIP\tMOUNTS\tSTATUS")
	fmt.Fprintln(w, "----\t-------\t--------\t--\t------\t------")

	for _, env := range snap.Environments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			env.Name, env.Backend, env.Template, env.IP, formatMounts(env), tui.RenderStatus(env.Status))
	}

	return w.Flush()
}

func formatMounts(env reconcile.Environment) string {
	if len(env.Mounts) == 0 {
		return "-"
	}
	parts := make([]string, len(env.Mounts))
	for i, m := range env.Mounts {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}
