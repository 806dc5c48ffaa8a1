package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
)

var pruneForce bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove registry entries for environments that no longer exist",
	Long: `Prune compares the registry with what the backends report and removes
entries whose instance is gone, for example after deleting it with
multipass or lxc directly.

Without --force, prints what would be removed (dry run). Entries for a
backend that is unavailable are never touched.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Actually remove stale entries (default is dry run)")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	r := reconciler()
	orphans := r.Orphans(commandContext(cmd))

	out := cmd.OutOrStdout()
	if jsonOutput && !pruneForce {
		return writeJSON(out, orphans)
	}

	if len(orphans) == 0 {
		logSuccess("Nothing to prune")
		return nil
	}

	if !jsonOutput {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBACKEND\tTEMPLATE")
		for _, o := range orphans {
			fmt.Fprintf(w, "%s\t%s\t%s\n", o.Name, o.Entry.Backend, o.Entry.Template)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if !pruneForce {
		logInfo("%d stale entry(ies). Run with --force to remove them.", len(orphans))
		return nil
	}

	if err := r.Prune(orphans); err != nil {
		return errors.PersistenceFailed("failed to prune registry", err)
	}
	if jsonOutput {
		return writeJSON(out, orphans)
	}
	logSuccess("Removed %d stale entry(ies)", len(orphans))
	return nil
}
