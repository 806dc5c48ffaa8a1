package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/errors"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/reconcile"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/system"
	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/testutil"
)

func executeCommand(args ...string) (string, string, error) {
	return executeCommandWithInput("", args...)
}

func executeCommandWithInput(input string, args ...string) (string, string, error) {
	// Reset flag values before each test
	createTemplate = ""
	createBackend = ""
	createCPUs, createMemory, createDisk = 0, 0, 0
	createMounts = nil
	deleteForce = false
	deleteForget = false
	execCapture = false
	shellHere = false
	pruneForce = false
	historyLimit = 0
	pickPlain = false
	templateAddID = ""
	verbose = false
	jsonOutput = false
	configDir = ""

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)
	cmd.SetIn(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, want := range []string{"udm", "multipass", "LXD", "Available Commands"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Help output should contain %q", want)
		}
	}
}

func TestCommands_Registered(t *testing.T) {
	want := []string{
		"list", "create", "start", "stop", "delete", "shell", "exec", "info",
		"templates", "config", "backends", "prune", "history", "pick", "new",
	}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "json", "config-dir"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing global flag --%s", name)
		}
	}
}

func TestCommandRequiresArgs(t *testing.T) {
	testutil.NewTestEnv(t)

	for _, args := range [][]string{
		{"create"},
		{"start"},
		{"stop"},
		{"delete"},
		{"shell"},
		{"info"},
		{"history"},
		{"exec"},
	} {
		t.Run(args[0], func(t *testing.T) {
			if _, _, err := executeCommand(args...); err == nil {
				t.Errorf("%s without a name should fail", args[0])
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")
	env.AddEnvironment(backend.KindContainer, "api", "Stopped", "nodejs-dev")

	stdout, _, err := executeCommand("list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"NAME", "web", "web-dev", "api", "lxd", "Running", "Stopped"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestListCommand_Empty(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, _, err := executeCommand("ls")
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}
	if !strings.Contains(stdout, "No environments found") {
		t.Errorf("output = %q", stdout)
	}
}

func TestListCommand_JSON(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")

	stdout, _, err := executeCommand("list", "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var envs []reconcile.Environment
	if err := json.Unmarshal([]byte(stdout), &envs); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(envs) != 1 || envs[0].Name != "web" || envs[0].Status != backend.StatusRunning {
		t.Errorf("envs = %+v", envs)
	}
}

func TestListCommand_UnavailableBackend(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")
	env.Container.SetAvailable(false)

	stdout, stderr, err := executeCommand("list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "web") {
		t.Error("available backend should still be listed")
	}
	if !strings.Contains(stderr, "lxd is not available") {
		t.Errorf("stderr = %q, want unavailable warning", stderr)
	}
}

func TestListCommand_FailedBackendsInOrder(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.VM.SetError("List", fmt.Errorf("multipassd not responding"))
	env.Container.SetError("List", fmt.Errorf("lxd socket closed"))

	for range 10 {
		_, stderr, err := executeCommand("list")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		vm := strings.Index(stderr, "failed to list multipass")
		lxd := strings.Index(stderr, "failed to list lxd")
		if vm < 0 || lxd < 0 || vm > lxd {
			t.Fatalf("warnings out of backend order:\n%s", stderr)
		}
	}
}

func TestCreateCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	host := t.TempDir()

	stdout, _, err := executeCommand("create", "web", "-t", "go-dev", "-b", "lxd", "-m", host+":/srv/web")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(stdout, "Created environment web") {
		t.Errorf("stdout = %q", stdout)
	}

	calls := env.Container.GetCallsFor("Create")
	if len(calls) != 1 {
		t.Fatalf("Create calls = %d, want 1", len(calls))
	}
	mounts := calls[0].Args[2].([]backend.Mount)
	if len(mounts) != 1 || mounts[0].HostPath != host || mounts[0].GuestPath != "/srv/web" {
		t.Errorf("mounts = %v", mounts)
	}
	res := calls[0].Args[3].(backend.Resources)
	want := env.App.DefaultResources()
	if res != want {
		t.Errorf("resources = %+v, want defaults %+v", res, want)
	}

	entry, ok := env.RegistryEntry("web")
	if !ok || entry.Template != "go-dev" || entry.Backend != "lxd" {
		t.Errorf("registry entry = %+v, %v", entry, ok)
	}
}

func TestCreateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind errors.Kind
	}{
		{"missing template flag", []string{"create", "web"}, ""},
		{"unknown template", []string{"create", "web", "-t", "cobol-dev"}, errors.KindUnknownTemplate},
		{"unknown backend", []string{"create", "web", "-t", "go-dev", "-b", "docker"}, errors.KindValidation},
		{"invalid name", []string{"create", "Web_1", "-t", "go-dev"}, errors.KindValidation},
		{"bad mount", []string{"create", "web", "-t", "go-dev", "-m", "/only-host"}, errors.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			_, _, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.kind != "" && !errors.IsKind(err, tt.kind) {
				t.Errorf("error kind = %q, want %q (%v)", errors.KindOf(err), tt.kind, err)
			}
			if _, ok := env.RegistryEntry("web"); ok {
				t.Error("failed create must not write the registry")
			}
		})
	}
}

func TestBuildCreateSpec(t *testing.T) {
	env := testutil.NewTestEnv(t)

	newFlags := func() *cobra.Command {
		c := &cobra.Command{Use: "create"}
		c.Flags().StringVarP(&createBackend, "backend", "b", "", "")
		c.Flags().IntVar(&createCPUs, "cpus", 0, "")
		c.Flags().IntVar(&createMemory, "memory", 0, "")
		c.Flags().IntVar(&createDisk, "disk", 0, "")
		c.Flags().StringArrayVarP(&createMounts, "mount", "m", nil, "")
		return c
	}

	t.Run("defaults", func(t *testing.T) {
		c := newFlags()
		if err := c.Flags().Parse(nil); err != nil {
			t.Fatal(err)
		}
		spec, err := buildCreateSpec(c, "web")
		if err != nil {
			t.Fatalf("buildCreateSpec() error: %v", err)
		}
		if spec.Backend != env.App.DefaultBackend() {
			t.Errorf("backend = %q, want %q", spec.Backend, env.App.DefaultBackend())
		}
		if spec.Resources != env.App.DefaultResources() {
			t.Errorf("resources = %+v", spec.Resources)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		c := newFlags()
		if err := c.Flags().Parse([]string{"--cpus", "6", "--memory", "0", "-b", "container"}); err != nil {
			t.Fatal(err)
		}
		spec, err := buildCreateSpec(c, "web")
		if err != nil {
			t.Fatalf("buildCreateSpec() error: %v", err)
		}
		if spec.Backend != backend.KindContainer {
			t.Errorf("backend = %q, want lxd", spec.Backend)
		}
		if spec.Resources.CPUs != 6 || spec.Resources.MemoryMB != 0 {
			t.Errorf("resources = %+v", spec.Resources)
		}
		if spec.Resources.DiskGB != env.App.DefaultResources().DiskGB {
			t.Errorf("disk = %d, want default", spec.Resources.DiskGB)
		}
	})

	t.Run("negative", func(t *testing.T) {
		c := newFlags()
		if err := c.Flags().Parse([]string{"--cpus", "-1"}); err != nil {
			t.Fatal(err)
		}
		if _, err := buildCreateSpec(c, "web"); !errors.IsKind(err, errors.KindValidation) {
			t.Errorf("err = %v, want validation error", err)
		}
	})
}

func TestStartStopCommands(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Stopped", "web-dev")

	stdout, _, err := executeCommand("start", "web")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !strings.Contains(stdout, "Started") {
		t.Errorf("start output = %q", stdout)
	}

	stdout, _, err = executeCommand("start", "web")
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if !strings.Contains(stdout, "already running") {
		t.Errorf("second start output = %q", stdout)
	}
	if got := len(env.VM.GetCallsFor("Start")); got != 1 {
		t.Errorf("Start calls = %d, want 1", got)
	}

	if _, _, err := executeCommand("stop", "web"); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	inst, _ := env.VM.Instance("web")
	if inst.RawStatus != "Stopped" {
		t.Errorf("status after stop = %q", inst.RawStatus)
	}
}

func TestStartCommand_NotFound(t *testing.T) {
	testutil.NewTestEnv(t)

	_, _, err := executeCommand("start", "ghost")
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	if got := errors.GetExitCode(err); got != errors.ExitEnvNotFound {
		t.Errorf("exit code = %d, want %d", got, errors.ExitEnvNotFound)
	}
}

func TestDeleteCommand(t *testing.T) {
	t.Run("force", func(t *testing.T) {
		env := testutil.NewTestEnv(t)
		env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")

		if _, _, err := executeCommand("delete", "web", "-f"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, ok := env.VM.Instance("web"); ok {
			t.Error("instance should be gone")
		}
		if _, ok := env.RegistryEntry("web"); ok {
			t.Error("registry entry should be gone")
		}
	})

	t.Run("declined", func(t *testing.T) {
		env := testutil.NewTestEnv(t)
		env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")

		stdout, _, err := executeCommandWithInput("n\n", "rm", "web")
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(stdout, "Cancelled") {
			t.Errorf("stdout = %q", stdout)
		}
		if _, ok := env.VM.Instance("web"); !ok {
			t.Error("declined delete removed the instance")
		}
	})

	t.Run("confirmed with forget", func(t *testing.T) {
		env := testutil.NewTestEnv(t)
		env.AddEnvironment(backend.KindContainer, "api", "Stopped", "nodejs-dev")

		if _, _, err := executeCommandWithInput("yes\n", "delete", "api", "--forget"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, ok := env.Container.Instance("api"); ok {
			t.Error("instance should be gone")
		}
		events, err := env.App.History.Events("api")
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 0 {
			t.Errorf("history should be removed, got %d events", len(events))
		}
	})
}

func TestShellCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")

	if _, _, err := executeCommand("shell", "web"); err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	if len(env.VM.Shells) != 1 || env.VM.Shells[0] != "web" {
		t.Errorf("Shells = %v", env.VM.Shells)
	}

	if _, _, err := executeCommand("shell", "web", "--here"); err != nil {
		t.Fatalf("shell --here failed: %v", err)
	}
	calls := env.VM.GetCallsFor("ExecInteractive")
	if len(calls) != 1 {
		t.Fatalf("ExecInteractive calls = %d, want 1", len(calls))
	}
}

func TestExecCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"argv", []string{"exec", "web", "--", "ls", "-la"}, []string{"ls", "-la"}},
		{"single word", []string{"exec", "web", "--", "pwd"}, []string{"pwd"}},
		{"shell string", []string{"exec", "web", "--", "cd /srv && make test"}, []string{"bash", "-c", "cd /srv && make test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")

			if _, _, err := executeCommand(tt.args...); err != nil {
				t.Fatalf("exec failed: %v", err)
			}
			calls := env.VM.GetCallsFor("ExecInteractive")
			if len(calls) != 1 {
				t.Fatalf("ExecInteractive calls = %d, want 1", len(calls))
			}
			got := calls[0].Args[1].([]string)
			if strings.Join(got, "\x00") != strings.Join(tt.want, "\x00") {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecCommand_Capture(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")
	env.VM.ExecResults["web"] = system.Result{Stdout: "hello\n"}

	stdout, _, err := executeCommand("exec", "--capture", "web", "--", "echo", "hello")
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	if stdout != "hello\n" {
		t.Errorf("stdout = %q, want hello", stdout)
	}
}

func TestExecCommand_Errors(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Stopped", "web-dev")

	if _, _, err := executeCommand("exec", "web"); !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("missing command: err = %v, want validation error", err)
	}
	if _, _, err := executeCommand("exec", "web", "--", "ls"); !errors.IsKind(err, errors.KindNotRunning) {
		t.Errorf("stopped environment: err = %v, want not running", err)
	}
}

func TestInfoCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindContainer, "api", "Running", "nodejs-dev")

	stdout, _, err := executeCommand("info", "api")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"api", "lxd", "container", "nodejs-dev"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("info output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestTemplatesCommand(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, _, err := executeCommand("templates")
	if err != nil {
		t.Fatalf("templates failed: %v", err)
	}
	for _, want := range []string{"TEMPLATE", "go-dev", "python-dev", "nodejs-dev"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("templates output should contain %q", want)
		}
	}

	stdout, _, err = executeCommand("templates", "show", "go-dev")
	if err != nil {
		t.Fatalf("templates show failed: %v", err)
	}
	if !strings.Contains(stdout, "golang") && !strings.Contains(stdout, "Go") {
		t.Errorf("show output = %q", stdout)
	}

	if _, _, err := executeCommand("templates", "show", "cobol-dev"); !errors.IsKind(err, errors.KindUnknownTemplate) {
		t.Errorf("err = %v, want template not found", err)
	}
}

func TestTemplatesAddRemove(t *testing.T) {
	env := testutil.NewTestEnv(t)

	file := filepath.Join(t.TempDir(), "elixir-dev.toml")
	if err := os.WriteFile(file, []byte(testutil.Fixture(t, testutil.CustomTemplate)), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := executeCommand("templates", "add", file); err != nil {
		t.Fatalf("templates add failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.Paths.TemplatesDir, "elixir-dev.toml")); err != nil {
		t.Errorf("template file not written: %v", err)
	}

	if _, _, err := executeCommand("templates", "add", file, "--id", "go-dev"); err == nil {
		t.Error("adding over a built-in should fail")
	}

	if _, _, err := executeCommand("templates", "remove", "elixir-dev"); err != nil {
		t.Fatalf("templates remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.Paths.TemplatesDir, "elixir-dev.toml")); !os.IsNotExist(err) {
		t.Error("template file should be removed")
	}
}

func TestConfigCommands(t *testing.T) {
	env := testutil.NewTestEnv(t)

	if _, _, err := executeCommand("config", "set", "default_cpus", "4"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	stdout, _, err := executeCommand("config", "get", "default_cpus")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "4" {
		t.Errorf("default_cpus = %q, want 4", stdout)
	}

	stdout, _, err = executeCommand("config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"default_backend", "lxd.storage_pool", "log_level"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show should list %q", want)
		}
	}

	export := filepath.Join(t.TempDir(), "settings.json")
	if _, _, err := executeCommand("config", "export", export); err != nil {
		t.Fatalf("config export failed: %v", err)
	}
	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"default_cpus": 4`) {
		t.Errorf("export = %s", data)
	}

	if _, _, err := executeCommand("config", "reset"); err != nil {
		t.Fatalf("config reset failed: %v", err)
	}
	stdout, _, _ = executeCommand("config", "get", "default_cpus")
	if strings.TrimSpace(stdout) == "4" {
		t.Error("reset should restore the default")
	}

	if _, _, err := executeCommand("config", "import", export); err != nil {
		t.Fatalf("config import failed: %v", err)
	}
	stdout, _, _ = executeCommand("config", "get", "default_cpus")
	if strings.TrimSpace(stdout) != "4" {
		t.Errorf("after import default_cpus = %q, want 4", stdout)
	}

	if _, _, err := executeCommand("config", "validate"); err != nil {
		t.Errorf("config validate failed: %v", err)
	}

	if _, err := os.Stat(env.Paths.SettingsFile()); err != nil {
		t.Errorf("settings file not written: %v", err)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "colour", "blue"},
		{"out of range", "default_cpus", "64"},
		{"bad backend", "default_backend", "docker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnv(t)

			_, _, err := executeCommand("config", "set", tt.key, tt.value)
			if !errors.IsKind(err, errors.KindConfig) {
				t.Fatalf("err = %v, want config error", err)
			}
			if _, err := os.Stat(env.Paths.SettingsFile()); !os.IsNotExist(err) {
				t.Error("invalid value must not be saved")
			}
		})
	}
}

func TestBackendsCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Container.SetAvailable(false)

	stdout, _, err := executeCommand("backends")
	if err != nil {
		t.Fatalf("backends failed: %v", err)
	}
	lines := strings.Split(stdout, "\n")
	var vmLine, lxdLine string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "multipass"):
			vmLine = l
		case strings.HasPrefix(l, "lxd"):
			lxdLine = l
		}
	}
	if !strings.Contains(vmLine, "yes") || !strings.Contains(vmLine, "mock 1.0") {
		t.Errorf("multipass line = %q", vmLine)
	}
	if !strings.Contains(lxdLine, "no") {
		t.Errorf("lxd line = %q", lxdLine)
	}
}

func TestHistoryCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Stopped", "web-dev")

	if _, _, err := executeCommand("start", "web"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := executeCommand("stop", "web"); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand("history", "web")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(stdout, "start") || !strings.Contains(stdout, "stop") {
		t.Errorf("history output = %q", stdout)
	}

	stdout, _, err = executeCommand("history", "web", "-n", "1", "--json")
	if err != nil {
		t.Fatalf("history --json failed: %v", err)
	}
	var events []map[string]any
	if err := json.Unmarshal([]byte(stdout), &events); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(events) != 1 || events[0]["type"] != "stop" {
		t.Errorf("events = %v", events)
	}
}

func TestHistoryCommand_Empty(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, _, err := executeCommand("history", "ghost")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(stdout, "No history") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPickCommand_Plain(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddEnvironment(backend.KindVM, "web", "Running", "web-dev")

	stdout, _, err := executeCommand("pick", "--plain")
	if err != nil {
		t.Fatalf("pick --plain failed: %v", err)
	}
	if !strings.Contains(stdout, "1. ● web (web-dev)") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/src:/srv", home + "/src:/srv"},
		{"~:/home/ubuntu/host", home + ":/home/ubuntu/host"},
		{"/abs:/srv", "/abs:/srv"},
		{"~user/src:/srv", "~user/src:/srv"},
	}

	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
