package cmd

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/tui"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show detailed information about an environment",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := reconciler().Info(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, info)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", info.Name)
	fmt.Fprintf(w, "Status:\t%s\n", tui.RenderStatus(info.Status))
	fmt.Fprintf(w, "Backend:\t%s (%s)\n", info.Backend, info.Backend.Class())
	fmt.Fprintf(w, "Template:\t%s\n", info.Template)
	fmt.Fprintf(w, "IP:\t%s\n", info.IP)
	if len(info.Mounts) == 0 {
		fmt.Fprintf(w, "Mounts:\t-\n")
	}
	for i, m := range info.Mounts {
		label := ""
		if i == 0 {
			label = "Mounts:"
		}
		fmt.Fprintf(w, "%s\t%s => %s\n", label, m.HostPath, m.GuestPath)
	}

	keys := make([]string, 0, len(info.Details))
	for k, v := range info.Details {
		switch v.(type) {
		case string, float64, bool:
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\t%v\n", detailLabel(k), info.Details[k])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if raw := strings.TrimSpace(info.Raw); raw != "" {
		fmt.Fprintf(out, "\n%s\n", raw)
	}
	return nil
}

// detailLabel turns a backend detail key such as image_release into
// "Image release".
func detailLabel(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
