package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show which backends are installed and usable",
	Args:  cobra.NoArgs,
	RunE:  runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	statuses := backend.Detect(commandContext(cmd), reconciler().Backends())

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, statuses)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tCLASS\tAVAILABLE\tVERSION\tDRIVER")
	fmt.Fprintln(w, "-------\t-----\t---------\t-------\t------")
	for _, st := range statuses {
		available := "no"
		if st.Available {
			available = "yes"
		}
		version := st.Version
		if version == "" {
			version = "-"
		}
		driver := st.Driver
		if driver == "" {
			driver = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", st.Kind, st.Class, available, version, driver)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, st := range statuses {
		if st.Warning != "" {
			logWarning("%s", st.Warning)
		}
	}
	return nil
}
