package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/catalog"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
)

var templateAddID string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available environment templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a template's packages and setup script",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesAddCmd = &cobra.Command{
	Use:   "add <file.toml>",
	Short: "Add a custom template from a TOML file",
	Long: `Add validates a custom template file and copies it into the templates
directory. The template ID is the file name without .toml unless --id is
given. Built-in template IDs cannot be reused.

Required fields are name, description and base_image:

  name = "Elixir Development"
  description = "Elixir with OTP"
  base_image = "22.04"
  packages = ["erlang", "elixir"]
  setup_script = """
  mix local.hex --force
  """`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplatesAdd,
}

var templatesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesRemove,
}

func init() {
	templatesAddCmd.Flags().StringVar(&templateAddID, "id", "", "Template ID (defaults to the file name)")
	templatesCmd.AddCommand(templatesShowCmd, templatesAddCmd, templatesRemoveCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	templates := app.Default.Templates.List()

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, templates)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tIMAGE\tPACKAGES\tDESCRIPTION")
	fmt.Fprintln(w, "--------\t-----\t--------\t-----------")

	for _, t := range templates {
		id := t.ID
		if t.Custom {
			id += " (custom)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", id, t.BaseImage, len(t.Packages), t.Description)
	}

	return w.Flush()
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	t, ok := app.Default.Templates.Get(args[0])
	if !ok {
		return errors.TemplateNotFound(args[0])
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, t)
	}

	fmt.Fprintf(out, "%s (%s)\n", t.Name, t.ID)
	fmt.Fprintf(out, "%s\n\n", t.Description)
	fmt.Fprintf(out, "Base image: %s\n", t.BaseImage)
	if len(t.Packages) > 0 {
		fmt.Fprintf(out, "Packages:   %s\n", strings.Join(t.Packages, " "))
	}
	if len(t.SetupScript) > 0 {
		fmt.Fprintln(out, "Setup script:")
		for _, line := range t.SetupScript {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

func runTemplatesAdd(cmd *cobra.Command, args []string) error {
	file := args[0]
	id := templateAddID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	t, err := catalog.LoadFile(file)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	if err := catalog.AddCustom(paths().TemplatesDir, id, *t); err != nil {
		return errors.ValidationError(err.Error())
	}

	logSuccess("Added template %s", id)
	return nil
}

func runTemplatesRemove(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := catalog.RemoveCustom(paths().TemplatesDir, id); err != nil {
		return errors.ValidationError(err.Error())
	}

	logSuccess("Removed template %s", id)
	return nil
}
