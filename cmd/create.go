package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/app"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
)

var (
	createTemplate string
	createBackend  string
	createCPUs     int
	createMemory   int
	createDisk     int
	createMounts   []string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new environment from a template",
	Long: `Create launches a new environment and provisions it from a template.

The backend and resource limits default to the configured values.
Mounts are given as host:guest and may be repeated:

  udm create web -t nodejs-dev -m ~/src/web:/home/ubuntu/web`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template to provision from (required)")
	createCmd.Flags().StringVarP(&createBackend, "backend", "b", "", "Backend: multipass (vm) or lxd (container)")
	createCmd.Flags().IntVar(&createCPUs, "cpus", 0, "Number of CPUs")
	createCmd.Flags().IntVar(&createMemory, "memory", 0, "Memory in MB")
	createCmd.Flags().IntVar(&createDisk, "disk", 0, "Disk size in GB (multipass only)")
	createCmd.Flags().StringArrayVarP(&createMounts, "mount", "m", nil, "Mount host:guest (repeatable)")
	_ = createCmd.MarkFlagRequired("template")
	rootCmd.AddCommand(createCmd)
}

// buildCreateSpec combines flags and configured defaults.
func buildCreateSpec(cmd *cobra.Command, name string) (reconcile.CreateSpec, error) {
	a := app.Default
	spec := reconcile.CreateSpec{
		Name:      name,
		Template:  createTemplate,
		Backend:   a.DefaultBackend(),
		Resources: a.DefaultResources(),
	}

	if createBackend != "" {
		kind, err := backend.ParseKind(createBackend)
		if err != nil {
			return spec, errors.ValidationError(err.Error())
		}
		spec.Backend = kind
	}

	flags := cmd.Flags()
	if flags.Changed("cpus") {
		spec.Resources.CPUs = createCPUs
	}
	if flags.Changed("memory") {
		spec.Resources.MemoryMB = createMemory
	}
	if flags.Changed("disk") {
		spec.Resources.DiskGB = createDisk
	}
	if spec.Resources.CPUs < 0 || spec.Resources.MemoryMB < 0 || spec.Resources.DiskGB < 0 {
		return spec, errors.ValidationError("resource limits cannot be negative")
	}

	for _, raw := range createMounts {
		m, err := backend.ParseMount(expandHome(raw))
		if err != nil {
			return spec, errors.ValidationError(err.Error())
		}
		spec.Mounts = append(spec.Mounts, m)
	}

	return spec, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	spec, err := buildCreateSpec(cmd, args[0])
	if err != nil {
		return err
	}

	logInfo("Creating %s %s from template %s (this can take several minutes)...",
		spec.Backend.Class(), spec.Name, spec.Template)

	if err := reconciler().Create(commandContext(cmd), spec); err != nil {
		return err
	}

	logSuccess("Created environment %s", spec.Name)
	logInfo("Open a shell with: udm shell %s", spec.Name)
	return nil
}
